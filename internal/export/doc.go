// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export turns a course document into downloadable files.
//
// All renderers are pure functions of (course, image map): nothing here
// mutates the course, caches output or touches the network.
//
// # Key Types
//
//   - Format: Export format enumeration (JSON, LMS JSON, Markdown, site, LMS, per-module)
//   - Renderer: Builds single documents and per-module fragments
//   - Assembler: Packs rendered pages into site and LMS bundles
//   - Service: The entry point used by the CLI; renders, saves and reports
//   - Saver: Delivers a payload (file, clipboard, stdout)
//
// # Supported Formats
//
//   - json: Course plus an export metadata envelope
//   - lms-json: Course verbatim, for programmatic re-import
//   - markdown: Single documentation file
//   - site: Zip with index.html, README.md and module-NN.html pages
//   - lms: Zip with canvas/index.html and canvas/module-NN.html pages
//   - module-markdown, module-json, module-html: One module, standalone
//
// # Usage
//
//	svc := export.NewService(export.DefaultOptions(), log)
//	res, err := svc.ExportAndSave(ctx, export.Request{
//	    Format: export.FormatSite,
//	    Course: c,
//	    Images: imgs,
//	}, &export.FileSaver{Dir: "out"})
package export
