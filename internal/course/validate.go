// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package course

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingModules is returned when a course document has no modules array
// at all. An empty array is valid.
var ErrMissingModules = errors.New("course has no modules array")

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the minimal shape exporters rely on. It does not reject
// missing optional data; see Lint for softer findings.
func (c *Course) Validate() error {
	if c == nil {
		return errors.New("course is nil")
	}
	if c.Modules == nil {
		return ErrMissingModules
	}
	return nil
}

// Finding is a non-fatal observation about a course document.
type Finding struct {
	// Module is the zero-based module position, -1 for course-level findings.
	Module int
	// Question is the zero-based quiz question position, -1 when not applicable.
	Question int
	Message  string
}

func (f Finding) String() string {
	switch {
	case f.Module < 0:
		return f.Message
	case f.Question < 0:
		return fmt.Sprintf("module %d: %s", f.Module+1, f.Message)
	default:
		return fmt.Sprintf("module %d, question %d: %s", f.Module+1, f.Question+1, f.Message)
	}
}

// Lint reports data that exporters tolerate but an author probably did not
// intend: duplicate module IDs, duplicate option labels and correct labels
// that match no option.
func (c *Course) Lint() []Finding {
	if c == nil {
		return nil
	}

	var out []Finding
	if strings.TrimSpace(c.Title) == "" {
		out = append(out, Finding{Module: -1, Question: -1, Message: "course title is empty"})
	}

	seenIDs := make(map[int]int, len(c.Modules))
	for mi, mod := range c.Modules {
		if prev, ok := seenIDs[mod.ID]; ok {
			out = append(out, Finding{
				Module:   mi,
				Question: -1,
				Message:  fmt.Sprintf("module id %d already used by module %d", mod.ID, prev+1),
			})
		} else {
			seenIDs[mod.ID] = mi
		}

		for qi, q := range mod.Quiz {
			labels := make(map[string]bool, len(q.Options))
			for _, opt := range q.Options {
				if labels[opt.Label] {
					out = append(out, Finding{Module: mi, Question: qi, Message: fmt.Sprintf("duplicate option label %q", opt.Label)})
				}
				labels[opt.Label] = true
			}
			if len(q.CorrectOptions()) == 0 {
				out = append(out, Finding{Module: mi, Question: qi, Message: fmt.Sprintf("correct label %q matches no option", q.CorrectLabel)})
			}
		}
	}
	return out
}
