// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package course

// =============================================================================
// COURSE DOCUMENT
// =============================================================================

// Course is the root document describing a generated learning unit.
// Field order matches the serialized order of JSON exports.
type Course struct {
	Title              string   `json:"title" yaml:"title" toml:"title"`
	Description        string   `json:"description" yaml:"description" toml:"description"`
	TargetAudience     string   `json:"targetAudience" yaml:"targetAudience" toml:"targetAudience"`
	LearningObjectives []string `json:"learningObjectives" yaml:"learningObjectives" toml:"learningObjectives"`
	// ColorPalette is a free-text aesthetic descriptor, not a list of colors.
	ColorPalette string   `json:"colorPalette" yaml:"colorPalette" toml:"colorPalette"`
	Modules      []Module `json:"modules" yaml:"modules" toml:"modules"`
}

// Module is one lesson unit within a Course.
type Module struct {
	// ID is assigned by the author and is not guaranteed to match the
	// module's position in Course.Modules.
	ID          int      `json:"id" yaml:"id" toml:"id"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Subtitle    string   `json:"subtitle" yaml:"subtitle" toml:"subtitle"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	KeyPoints   []string `json:"keyPoints" yaml:"keyPoints" toml:"keyPoints"`
	// VisualPrompt describes an illustrative image. Empty when absent.
	VisualPrompt string         `json:"visualPrompt,omitempty" yaml:"visualPrompt,omitempty" toml:"visualPrompt,omitempty"`
	Quiz         []QuizQuestion `json:"quiz" yaml:"quiz" toml:"quiz"`
}

// QuizQuestion is a multiple choice question.
type QuizQuestion struct {
	Question     string       `json:"question" yaml:"question" toml:"question"`
	Options      []QuizOption `json:"options" yaml:"options" toml:"options"`
	CorrectLabel string       `json:"correctLabel" yaml:"correctLabel" toml:"correctLabel"`
}

// QuizOption is one answer of a QuizQuestion.
type QuizOption struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	Text  string `json:"text" yaml:"text" toml:"text"`
}

// IsCorrect reports whether opt is the question's correct answer.
// An empty CorrectLabel never matches.
func (q QuizQuestion) IsCorrect(opt QuizOption) bool {
	return q.CorrectLabel != "" && opt.Label == q.CorrectLabel
}

// CorrectOptions returns the positions of every option whose label equals
// CorrectLabel. Zero matches is a normal state; more than one means the
// question carries duplicate labels.
func (q QuizQuestion) CorrectOptions() []int {
	var idx []int
	for i, opt := range q.Options {
		if q.IsCorrect(opt) {
			idx = append(idx, i)
		}
	}
	return idx
}

// =============================================================================
// POSITIONAL HELPERS
// =============================================================================

// ModuleCount returns the number of modules in the course.
func (c *Course) ModuleCount() int {
	if c == nil {
		return 0
	}
	return len(c.Modules)
}

// ModuleAt returns the module at the zero-based position idx.
func (c *Course) ModuleAt(idx int) (Module, bool) {
	if c == nil || idx < 0 || idx >= len(c.Modules) {
		return Module{}, false
	}
	return c.Modules[idx], true
}
