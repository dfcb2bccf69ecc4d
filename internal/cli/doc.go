// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the curriculumlab command line.
//
// # Commands Overview
//
//   - export: Export a whole course (json, lms-json, markdown, site, lms)
//   - module: Export one module (markdown, json, html)
//   - preview: Render a Markdown or JSON export in the terminal
//   - library: Store courses and module images in the local library
//   - config: Show the effective configuration
//
// # Usage
//
//	os.Exit(cli.Run(context.Background(), os.Args, os.Stdout, os.Stderr))
//
// Export data goes to stdout only with --stdout. Notices, logs and errors
// go to stderr.
package cli
