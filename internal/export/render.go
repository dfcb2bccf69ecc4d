// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"time"

	"github.com/jeranaias/curriculumlab/internal/course"
	"github.com/jeranaias/curriculumlab/internal/markup"
)

// =============================================================================
// RENDERER
// =============================================================================

// Renderer holds the immutable configuration shared by every document and
// fragment renderer. It is safe for concurrent use.
type Renderer struct {
	branding   Branding
	labels     Labels
	lang       string
	prettyJSON bool
	now        func() time.Time
}

// NewRenderer creates a renderer from opts. A nil opts uses DefaultOptions.
func NewRenderer(opts *Options) *Renderer {
	if opts == nil {
		opts = DefaultOptions()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	lang := opts.Lang
	if lang == "" {
		lang = "es"
	}
	return &Renderer{
		branding:   opts.Branding,
		labels:     opts.Labels.WithDefaults(),
		lang:       lang,
		prettyJSON: opts.PrettyJSON,
		now:        now,
	}
}

// Branding returns the attribution this renderer prints.
func (r *Renderer) Branding() Branding { return r.branding }

// Labels returns the resolved labels.
func (r *Renderer) Labels() Labels { return r.labels }

// exportedAt is the single timestamp source for envelopes and archive
// entries, always in UTC.
func (r *Renderer) exportedAt() time.Time {
	return r.now().UTC()
}

// footer renders the attribution block shared by every HTML page.
func (r *Renderer) footer() *markup.Element {
	return markup.El("footer",
		markup.El("p", markup.Text(r.branding.Attribution)).Class("credits"),
		markup.El("p", markup.Text(r.branding.Credits)).Class("credits-meta"),
	)
}

// checkCourse rejects the two malformed inputs renderers cannot work with.
// An empty module list is valid.
func checkCourse(c *course.Course) error {
	if c == nil {
		return ErrNilCourse
	}
	if c.Modules == nil {
		return ErrMissingModules
	}
	return nil
}
