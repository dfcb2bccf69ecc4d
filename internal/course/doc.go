// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package course defines the in-memory course document handed to exporters.
//
// A Course is produced upstream (by generation or from a fixture) and is
// treated as read-only by every consumer in this repository.
//
// # Key Types
//
//   - Course: root aggregate (metadata, objectives, ordered modules)
//   - Module: one lesson unit with key points and a quiz
//   - QuizQuestion / QuizOption: multiple choice questions
//   - ImageMap: optional illustrative images keyed by module id or position
//
// # Loading
//
// Courses can be read from JSON, YAML or TOML files:
//
//	c, err := course.Load("course.yaml")
//	if err != nil {
//	    return err
//	}
//
// Images can be loaded from a directory of files named after the module
// reference (for example 1.png, 2.jpg):
//
//	imgs, err := course.LoadImageDir("images")
package course
