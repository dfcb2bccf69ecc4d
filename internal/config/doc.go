// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for curriculumlab.
//
// Supports both TOML and JSON configuration formats, with defaults, .env
// files, environment variable overrides and validation.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - ExportConfig: Output directory, JSON formatting, HTML language
//   - LogConfig: Log level and encoder mode
//   - LibraryConfig: Course library database location
//
// Branding and label overrides reuse export.Branding and export.Labels.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CURRICULUMLAB_*), including those from .env
//   - ~/.curriculumlab/config.toml
//   - ~/.curriculumlab/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svc := export.NewService(cfg.ExportOptions(), logger)
package config
