// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small file and text helpers shared by the exporter,
// the course library and the CLI.
//
// # Key Functions
//
// File Operations:
//   - WriteFileAtomic: Crash-safe file writing with fsync and rename
//   - UniquePath: Picks a free file name by adding a numeric suffix
//
// Text Columns:
//   - TruncateWidth: Display-width aware truncation with ellipsis
//   - PadRight: Pads to a display width for aligned tables
//
// # Usage
//
//	// Write a bundle without ever leaving a partial file behind
//	err := util.WriteFileAtomic(path, data, 0644)
//
//	// Align a column containing accented or wide characters
//	cell := util.PadRight(util.TruncateWidth(title, 40), 40)
package util
