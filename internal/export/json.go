// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/curriculumlab/internal/course"
)

// =============================================================================
// JSON DOCUMENTS
// =============================================================================

// ExportMetadata is the envelope appended to a data export.
type ExportMetadata struct {
	ExportedAt   string  `json:"exportedAt"`
	ExportedWith string  `json:"exportedWith"`
	Credits      Credits `json:"credits"`
}

// Credits is the attribution carried by a data export.
type Credits struct {
	Attribution string `json:"attribution"`
	Author      string `json:"author"`
	Year        int    `json:"year"`
	Tool        string `json:"tool"`
}

// CourseEnvelope is a course with its export metadata. The course fields
// stay at the top level so the file parses back as a plain course.
type CourseEnvelope struct {
	course.Course
	Metadata ExportMetadata `json:"metadata"`
}

// ModuleDocument is a single module exported as a standalone learning object.
type ModuleDocument struct {
	Module        course.Module  `json:"module"`
	CourseContext ModuleContext  `json:"courseContext"`
	Metadata      ModuleMetadata `json:"metadata"`
}

// ModuleContext places a standalone module within its course.
type ModuleContext struct {
	CourseTitle       string `json:"courseTitle"`
	CourseDescription string `json:"courseDescription"`
	TargetAudience    string `json:"targetAudience"`
	ModulePosition    int    `json:"modulePosition"`
	TotalModules      int    `json:"totalModules"`
}

// ModuleMetadata describes a standalone module export.
type ModuleMetadata struct {
	ExportedAt string `json:"exportedAt"`
	Format     string `json:"format"`
	Version    string `json:"version"`
}

const (
	moduleDocFormat  = "standalone-learning-object"
	moduleDocVersion = "1.0"
)

// RenderCourseJSON renders the data export: the course plus metadata.
func (r *Renderer) RenderCourseJSON(c *course.Course) ([]byte, error) {
	if err := checkCourse(c); err != nil {
		return nil, err
	}
	env := CourseEnvelope{
		Course: *c,
		Metadata: ExportMetadata{
			ExportedAt:   r.exportedAt().Format(time.RFC3339),
			ExportedWith: r.branding.AppName,
			Credits: Credits{
				Attribution: r.branding.Attribution,
				Author:      r.branding.Author,
				Year:        r.branding.Year,
				Tool:        r.branding.AppName,
			},
		},
	}
	return r.encodeJSON(env)
}

// RenderRawJSON renders the course verbatim for programmatic re-import.
func (r *Renderer) RenderRawJSON(c *course.Course) ([]byte, error) {
	if err := checkCourse(c); err != nil {
		return nil, err
	}
	return r.encodeJSON(c)
}

// RenderModuleJSON renders the module at position idx as a standalone
// learning object.
func (r *Renderer) RenderModuleJSON(c *course.Course, idx int) ([]byte, error) {
	mod, err := moduleAt(c, idx)
	if err != nil {
		return nil, err
	}
	doc := ModuleDocument{
		Module: mod,
		CourseContext: ModuleContext{
			CourseTitle:       c.Title,
			CourseDescription: c.Description,
			TargetAudience:    c.TargetAudience,
			ModulePosition:    idx + 1,
			TotalModules:      len(c.Modules),
		},
		Metadata: ModuleMetadata{
			ExportedAt: r.exportedAt().Format(time.RFC3339),
			Format:     moduleDocFormat,
			Version:    moduleDocVersion,
		},
	}
	return r.encodeJSON(doc)
}

// encodeJSON writes v without HTML escaping so text round-trips verbatim.
func (r *Renderer) encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if r.prettyJSON {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}
