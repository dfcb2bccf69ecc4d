// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format identifies an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatLMSJSON  Format = "lms-json"
	FormatMarkdown Format = "markdown"
	FormatSite     Format = "site"
	FormatLMS      Format = "lms"

	FormatModuleMarkdown Format = "module-markdown"
	FormatModuleJSON     Format = "module-json"
	FormatModuleHTML     Format = "module-html"
)

// CourseFormats lists the whole-course formats in menu order.
var CourseFormats = []Format{FormatSite, FormatLMS, FormatJSON, FormatLMSJSON, FormatMarkdown}

// ModuleFormats lists the single-module formats.
var ModuleFormats = []Format{FormatModuleMarkdown, FormatModuleJSON, FormatModuleHTML}

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "lms-json", "lmsjson", "raw":
		return FormatLMSJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "site", "static", "zip":
		return FormatSite, nil
	case "lms", "canvas":
		return FormatLMS, nil
	case "module-markdown", "module-md":
		return FormatModuleMarkdown, nil
	case "module-json":
		return FormatModuleJSON, nil
	case "module-html", "module-htm":
		return FormatModuleHTML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// ModuleFormat maps a short name (markdown, json, html) to a module format.
func ModuleFormat(s string) (Format, error) {
	f, err := ParseFormat("module-" + strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
	return f, nil
}

// IsArchive reports whether the format produces a zip bundle.
func (f Format) IsArchive() bool {
	return f == FormatSite || f == FormatLMS
}

// IsModule reports whether the format describes a single module.
func (f Format) IsModule() bool {
	return f == FormatModuleMarkdown || f == FormatModuleJSON || f == FormatModuleHTML
}

// FileExtension returns the file extension including the dot.
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON, FormatLMSJSON, FormatModuleJSON:
		return ".json"
	case FormatMarkdown, FormatModuleMarkdown:
		return ".md"
	case FormatModuleHTML:
		return ".html"
	case FormatSite, FormatLMS:
		return ".zip"
	default:
		return ""
	}
}

// MimeType returns the MIME type of the payload.
func (f Format) MimeType() string {
	switch f {
	case FormatJSON, FormatLMSJSON, FormatModuleJSON:
		return "application/json"
	case FormatMarkdown, FormatModuleMarkdown:
		return "text/markdown"
	case FormatModuleHTML:
		return "text/html"
	case FormatSite, FormatLMS:
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
