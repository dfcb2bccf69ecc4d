// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/curriculumlab/internal/course"
)

// =============================================================================
// MARKDOWN
// =============================================================================

// Markdown interpolates course text verbatim. Titles containing Markdown
// syntax are reproduced as written.

// RenderMarkdown renders the whole course as one Markdown document.
func (r *Renderer) RenderMarkdown(c *course.Course) ([]byte, error) {
	if err := checkCourse(c); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", c.Title))
	if c.Description != "" {
		sb.WriteString(c.Description + "\n\n")
	}

	sb.WriteString(fmt.Sprintf("## %s\n", r.labels.CourseDetails))
	sb.WriteString(fmt.Sprintf("**%s:** %s\n", r.labels.Audience, c.TargetAudience))
	sb.WriteString(fmt.Sprintf("**%s:** %s\n\n", r.labels.Aesthetic, c.ColorPalette))

	if len(c.LearningObjectives) > 0 {
		sb.WriteString(fmt.Sprintf("### %s\n", r.labels.Objectives))
		for _, obj := range c.LearningObjectives {
			sb.WriteString("- " + obj + "\n")
		}
	}
	sb.WriteString("\n---\n\n")

	for i, mod := range c.Modules {
		r.writeModuleMarkdown(&sb, mod, fmt.Sprintf("%s %d: %s", r.labels.Module, i+1, mod.Title), 2)
		sb.WriteString("\n---\n\n")
	}

	return []byte(sb.String()), nil
}

// RenderModuleMarkdown renders the module at position idx as a standalone
// Markdown document.
func (r *Renderer) RenderModuleMarkdown(c *course.Course, idx int) ([]byte, error) {
	mod, err := moduleAt(c, idx)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	r.writeModuleMarkdown(&sb, mod, mod.Title, 1)
	return []byte(sb.String()), nil
}

// writeModuleMarkdown writes one module with its title at heading level.
// Empty sections are omitted together with their headings.
func (r *Renderer) writeModuleMarkdown(sb *strings.Builder, mod course.Module, title string, level int) {
	h := func(depth int) string { return strings.Repeat("#", level+depth) + " " }

	sb.WriteString(h(0) + title + "\n")
	if mod.Subtitle != "" {
		sb.WriteString(h(1) + mod.Subtitle + "\n")
	}
	sb.WriteString("\n")

	if paras := Paragraphs(mod.Description); len(paras) > 0 {
		sb.WriteString(strings.Join(paras, "\n\n") + "\n\n")
	}

	if len(mod.KeyPoints) > 0 {
		sb.WriteString(h(2) + r.labels.KeyPoints + "\n")
		for _, kp := range mod.KeyPoints {
			sb.WriteString("- " + kp + "\n")
		}
		sb.WriteString("\n")
	}

	if len(mod.Quiz) > 0 {
		sb.WriteString(h(2) + r.labels.QuizShort + "\n")
		for qi, q := range mod.Quiz {
			sb.WriteString(fmt.Sprintf("%d. %s\n", qi+1, q.Question))
			for _, opt := range q.Options {
				sb.WriteString(fmt.Sprintf("   - %s) %s\n", opt.Label, opt.Text))
			}
			if q.CorrectLabel != "" {
				sb.WriteString(fmt.Sprintf("   *%s: %s*\n", r.labels.Correct, q.CorrectLabel))
			}
			sb.WriteString("\n")
		}
	}
}

// moduleAt validates c and returns the module at idx.
func moduleAt(c *course.Course, idx int) (course.Module, error) {
	if err := checkCourse(c); err != nil {
		return course.Module{}, err
	}
	mod, ok := c.ModuleAt(idx)
	if !ok {
		return course.Module{}, fmt.Errorf("%w: %d of %d", ErrModuleIndex, idx, len(c.Modules))
	}
	return mod, nil
}
