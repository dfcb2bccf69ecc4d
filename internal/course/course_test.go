// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package course

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestImageMap_Resolve(t *testing.T) {
	mod := Module{ID: 7}

	tests := []struct {
		name   string
		imgs   ImageMap
		idx    int
		want   string
		wantOK bool
	}{
		{name: "nil map", imgs: nil, idx: 0},
		{name: "by id", imgs: ImageMap{7: "data:id", 0: "data:idx"}, idx: 0, want: "data:id", wantOK: true},
		{name: "falls back to position", imgs: ImageMap{0: "data:idx"}, idx: 0, want: "data:idx", wantOK: true},
		{name: "empty id entry falls back", imgs: ImageMap{7: "", 2: "data:idx"}, idx: 2, want: "data:idx", wantOK: true},
		{name: "blank payload is absent", imgs: ImageMap{7: "  "}, idx: 1},
		{name: "no match", imgs: ImageMap{3: "data:x"}, idx: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.imgs.Resolve(mod, tt.idx)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestQuizQuestion_CorrectOptions(t *testing.T) {
	q := QuizQuestion{
		Options:      []QuizOption{{Label: "A"}, {Label: "B"}, {Label: "B"}},
		CorrectLabel: "B",
	}
	require.Equal(t, []int{1, 2}, q.CorrectOptions())

	q.CorrectLabel = "Z"
	require.Empty(t, q.CorrectOptions())

	q.CorrectLabel = ""
	require.False(t, q.IsCorrect(QuizOption{Label: ""}))
	q.Options = append(q.Options, QuizOption{Label: "", Text: "sin etiqueta"})
	require.Empty(t, q.CorrectOptions())
}

func TestParse_Formats(t *testing.T) {
	want := &Course{
		Title:              "A & B <Course>",
		Description:        "desc",
		TargetAudience:     "everyone",
		LearningObjectives: []string{"one", "two"},
		ColorPalette:       "sepia",
		Modules: []Module{{
			ID:          7,
			Title:       "First",
			Subtitle:    "Sub",
			Description: "Line one\nLine two",
			KeyPoints:   []string{"k1"},
			Quiz: []QuizQuestion{{
				Question:     "Q?",
				Options:      []QuizOption{{Label: "A", Text: "yes"}, {Label: "B", Text: "no"}},
				CorrectLabel: "A",
			}},
		}},
	}

	inputs := map[Format]string{
		FormatJSON: `{"title":"A & B <Course>","description":"desc","targetAudience":"everyone",
			"learningObjectives":["one","two"],"colorPalette":"sepia",
			"modules":[{"id":7,"title":"First","subtitle":"Sub","description":"Line one\nLine two",
			"keyPoints":["k1"],"quiz":[{"question":"Q?","options":[{"label":"A","text":"yes"},{"label":"B","text":"no"}],"correctLabel":"A"}]}],
			"metadata":{"exportedAt":"2025-01-01T00:00:00Z"}}`,
		FormatYAML: `
title: "A & B <Course>"
description: desc
targetAudience: everyone
learningObjectives: [one, two]
colorPalette: sepia
modules:
  - id: 7
    title: First
    subtitle: Sub
    description: "Line one\nLine two"
    keyPoints: [k1]
    quiz:
      - question: Q?
        options:
          - {label: A, text: "yes"}
          - {label: B, text: "no"}
        correctLabel: A
`,
		FormatTOML: `
title = "A & B <Course>"
description = "desc"
targetAudience = "everyone"
learningObjectives = ["one", "two"]
colorPalette = "sepia"

[[modules]]
id = 7
title = "First"
subtitle = "Sub"
description = "Line one\nLine two"
keyPoints = ["k1"]

[[modules.quiz]]
question = "Q?"
correctLabel = "A"
options = [{label = "A", text = "yes"}, {label = "B", text = "no"}]
`,
	}

	for format, in := range inputs {
		t.Run(string(format), func(t *testing.T) {
			got, err := Parse([]byte(in), format)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("course mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_MissingModules(t *testing.T) {
	_, err := Parse([]byte(`{"title":"x"}`), FormatJSON)
	require.True(t, errors.Is(err, ErrMissingModules), "got %v", err)

	c, err := Parse([]byte(`{"title":"x","modules":[]}`), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, 0, c.ModuleCount())
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse([]byte(`{}`), Format("xml"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "course.yml")
	require.NoError(t, os.WriteFile(path, []byte("title: Demo\nmodules: []\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Demo", c.Title)

	_, err = Load(filepath.Join(dir, "course.txt"))
	require.Error(t, err)
}

func TestLint(t *testing.T) {
	c := &Course{
		Title: "T",
		Modules: []Module{
			{ID: 1, Quiz: []QuizQuestion{{
				Options:      []QuizOption{{Label: "A"}, {Label: "A"}},
				CorrectLabel: "A",
			}}},
			{ID: 1, Quiz: []QuizQuestion{{
				Options:      []QuizOption{{Label: "A"}},
				CorrectLabel: "C",
			}}},
		},
	}

	var msgs []string
	for _, f := range c.Lint() {
		msgs = append(msgs, f.String())
	}
	joined := strings.Join(msgs, "\n")
	require.Len(t, msgs, 3, joined)
	require.Contains(t, joined, `module 1, question 1: duplicate option label "A"`)
	require.Contains(t, joined, "module 2: module id 1 already used by module 1")
	require.Contains(t, joined, `module 2, question 1: correct label "C" matches no option`)
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI(pngHeader)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"), uri)

	_, err = DataURI([]byte("plain text, not an image"))
	require.Error(t, err)

	_, err = DataURI(nil)
	require.Error(t, err)
}

func TestLoadImageDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.png"), pngHeader, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2"), 0755))

	imgs, err := LoadImageDir(dir)
	require.NoError(t, err)
	require.Len(t, imgs, 1)
	require.Contains(t, imgs[1], "data:image/png;base64,")
}

func TestDemo(t *testing.T) {
	a := Demo()
	require.Equal(t, 2, a.ModuleCount())
	require.Empty(t, a.Lint())

	// Fresh copy per call.
	a.Modules[0].Title = "changed"
	require.NotEqual(t, "changed", Demo().Modules[0].Title)
}
