// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"

	"github.com/jeranaias/curriculumlab/internal/course"
	"github.com/jeranaias/curriculumlab/internal/markup"
)

// =============================================================================
// LMS OVERVIEW
// =============================================================================

// LMSOverview builds the LMS overview page. Every module is embedded inline
// with per-element styles so the page survives pasting into an LMS editor.
func (r *Renderer) LMSOverview(c *course.Course, imgs course.ImageMap) (*markup.Document, error) {
	if err := checkCourse(c); err != nil {
		return nil, err
	}

	objectives := markup.El("ul")
	for _, obj := range c.LearningObjectives {
		objectives.Append(markup.El("li", markup.Text(obj)))
	}

	body := markup.El("body",
		markup.El("div",
			markup.El("h1", markup.Text(c.Title)),
			markup.El("p", markup.Text(c.Description)),
		).Class("canvas-header"),
		markup.El("div",
			markup.El("h2", markup.Text(r.labels.CourseInfo)),
			markup.El("p", markup.El("strong", markup.Textf("%s:", r.labels.Audience)), markup.Text(" "+c.TargetAudience)),
			markup.El("p", markup.El("strong", markup.Textf("%s:", r.labels.Objectives))),
			objectives,
			markup.El("p", markup.El("strong", markup.Textf("%s:", r.labels.Aesthetic)), markup.Text(" "+c.ColorPalette)),
		).Class("canvas-meta"),
	)

	mr := r.ModuleWithStyle(overviewStyle())
	for i, mod := range c.Modules {
		section, err := mr.Section(c, i, imgs)
		if err != nil {
			return nil, err
		}
		body.Append(markup.Comment(fmt.Sprintf("%s %d: %s", r.labels.Module, i+1, mod.Title)), section)
	}
	body.Append(r.footer())

	return &markup.Document{
		Lang:  r.lang,
		Title: c.Title + " - Canvas",
		Meta:  map[string]string{"generator": r.branding.AppName},
		Head:  []markup.Node{markup.StyleSheet(lmsCSS)},
		Body:  body,
	}, nil
}

// RenderLMSOverview renders the LMS overview page to bytes.
func (r *Renderer) RenderLMSOverview(c *course.Course, imgs course.ImageMap) ([]byte, error) {
	doc, err := r.LMSOverview(c, imgs)
	if err != nil {
		return nil, err
	}
	return []byte(markup.Render(doc)), nil
}
