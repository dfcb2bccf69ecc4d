// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jeranaias/curriculumlab/internal/course"
)

// =============================================================================
// FIXTURES
// =============================================================================

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

const hostileTitle = `A & B <Course>`

const pixel = "data:image/png;base64,iVBORw0KGgo="

func testOptions() *Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

func testRenderer() *Renderer {
	return NewRenderer(testOptions())
}

// archiveCourse has one module without a visual prompt and one whose image
// is missing from the map returned alongside it.
func archiveCourse() (*course.Course, course.ImageMap) {
	c := &course.Course{
		Title:              "Archive & Memory",
		Description:        "Prácticas de archivo comunitario.",
		TargetAudience:     "Educadores",
		LearningObjectives: []string{"Catalogar", "Preservar"},
		ColorPalette:       "Sepia y ocre",
		Modules: []course.Module{
			{
				ID:          10,
				Title:       "Fuentes",
				Subtitle:    "Qué guardar",
				Description: "Primer párrafo.\n\nSegundo párrafo.",
				KeyPoints:   []string{"Inventario"},
				Quiz: []course.QuizQuestion{{
					Question:     "¿Qué es una fuente primaria?",
					Options:      []course.QuizOption{{Label: "A", Text: "Un testimonio"}, {Label: "B", Text: "Un resumen"}},
					CorrectLabel: "A",
				}},
			},
			{
				ID:           20,
				Title:        "Conservación",
				Subtitle:     "Cómo guardar",
				Description:  "Humedad y luz.",
				KeyPoints:    []string{"Temperatura", "Embalaje"},
				VisualPrompt: "Cajas de archivo en estanterías",
				Quiz: []course.QuizQuestion{{
					Question:     "¿Qué daña el papel?",
					Options:      []course.QuizOption{{Label: "A", Text: "La luz"}, {Label: "B", Text: "El orden"}},
					CorrectLabel: "A",
				}},
			},
		},
	}
	return c, course.ImageMap{10: pixel}
}

// hostileCourse carries HTML-significant characters in every text field.
func hostileCourse() *course.Course {
	return &course.Course{
		Title:              hostileTitle,
		Description:        `Say "hi" & <b>bye</b>`,
		TargetAudience:     `<script>alert('x')</script>`,
		LearningObjectives: []string{`1 < 2`},
		ColorPalette:       `"quoted"`,
		Modules: []course.Module{{
			ID:           1,
			Title:        `<img src=x onerror=alert(1)>`,
			Subtitle:     `It's & it's`,
			Description:  "line <one>\nline & two",
			KeyPoints:    []string{`<li>point</li>`},
			VisualPrompt: `<prompt>`,
			Quiz: []course.QuizQuestion{{
				Question:     `2 > 1?`,
				Options:      []course.QuizOption{{Label: "A", Text: `<yes>`}, {Label: "B", Text: `no & never`}},
				CorrectLabel: "A",
			}},
		}},
	}
}

// nModules builds a course with n minimal modules whose IDs do not match
// their positions.
func nModules(n int) *course.Course {
	c := &course.Course{Title: "Curso", Modules: []course.Module{}}
	for i := 0; i < n; i++ {
		c.Modules = append(c.Modules, course.Module{
			ID:    100 + i,
			Title: fmt.Sprintf("Módulo número %d", i+1),
		})
	}
	return c
}

// =============================================================================
// HTML HELPERS
// =============================================================================

func parseHTML(t *testing.T, data []byte) *html.Node {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func tagClass(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == tag && (class == "" || hasClass(n, class))
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// htmlOutputs renders every HTML document the exporter produces for c.
func htmlOutputs(t *testing.T, r *Renderer, c *course.Course, imgs course.ImageMap) map[string][]byte {
	t.Helper()
	out := make(map[string][]byte)

	index, err := r.RenderSiteIndex(c)
	require.NoError(t, err)
	out["site index"] = index

	overview, err := r.RenderLMSOverview(c, imgs)
	require.NoError(t, err)
	out["lms overview"] = overview

	for i := range c.Modules {
		for _, ctx := range []Context{ContextStandalone, ContextSite, ContextLMS} {
			page, err := r.Module(ctx).HTML(c, i, imgs)
			require.NoError(t, err)
			out[fmt.Sprintf("%s module %d", ctx, i+1)] = page
		}
	}
	return out
}
