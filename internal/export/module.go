// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/curriculumlab/internal/course"
	"github.com/jeranaias/curriculumlab/internal/markup"
)

// =============================================================================
// MODULE CONTEXTS
// =============================================================================

// Context is the presentation context of a module page.
type Context int

const (
	// ContextStandalone is a single downloadable module document.
	ContextStandalone Context = iota
	// ContextSite is a page of the static-site bundle.
	ContextSite
	// ContextLMS is a page of the LMS bundle.
	ContextLMS
)

// String returns the context name.
func (c Context) String() string {
	switch c {
	case ContextStandalone:
		return "standalone"
	case ContextSite:
		return "site"
	case ContextLMS:
		return "lms"
	default:
		return fmt.Sprintf("Context(%d)", int(c))
	}
}

// ModuleStyle parameterizes the single module renderer. The three page
// variants differ only in these switches.
type ModuleStyle struct {
	Context Context

	// ShowBackLink adds a link to index.html above the title.
	ShowBackLink bool
	// PrefixTitle renders "Módulo N: title" as the heading, below the
	// position badge.
	PrefixTitle bool
	// LabelQuestions renders "Pregunta N:" instead of "N.".
	LabelQuestions bool
	// DescriptionHeading adds a heading above the description.
	DescriptionHeading bool
	// InlineStyles puts style attributes on each element.
	InlineStyles bool
	// ShowCourseContext appends course title, position and export time.
	ShowCourseContext bool
	// ShowCredits appends the attribution footer to full pages.
	ShowCredits bool

	// TitleTag is the heading element of the module title.
	TitleTag string
	// StyleSheet is embedded in full pages.
	StyleSheet string
}

// StyleFor returns the page style of a context.
func StyleFor(ctx Context) ModuleStyle {
	switch ctx {
	case ContextSite:
		return ModuleStyle{
			Context:      ContextSite,
			ShowBackLink: true,
			ShowCredits:  true,
			TitleTag:     "h1",
			StyleSheet:   siteModuleCSS,
		}
	case ContextLMS:
		return ModuleStyle{
			Context:            ContextLMS,
			PrefixTitle:        true,
			LabelQuestions:     true,
			DescriptionHeading: true,
			ShowCredits:        true,
			TitleTag:           "h2",
			StyleSheet:         lmsCSS,
		}
	default:
		return ModuleStyle{
			Context:           ContextStandalone,
			ShowCourseContext: true,
			TitleTag:          "h1",
			StyleSheet:        standaloneCSS,
		}
	}
}

// overviewStyle is used for modules embedded in the LMS overview page.
func overviewStyle() ModuleStyle {
	s := StyleFor(ContextLMS)
	s.InlineStyles = true
	s.ShowCredits = false
	return s
}

// =============================================================================
// MODULE RENDERER
// =============================================================================

// ModuleRenderer renders one module in a fixed style.
type ModuleRenderer struct {
	*Renderer
	style ModuleStyle
}

// Module returns a module renderer for ctx.
func (r *Renderer) Module(ctx Context) *ModuleRenderer {
	return r.ModuleWithStyle(StyleFor(ctx))
}

// ModuleWithStyle returns a module renderer for a custom style.
func (r *Renderer) ModuleWithStyle(style ModuleStyle) *ModuleRenderer {
	if style.TitleTag == "" {
		style.TitleTag = "h2"
	}
	return &ModuleRenderer{Renderer: r, style: style}
}

// Style returns the renderer's style.
func (m *ModuleRenderer) Style() ModuleStyle { return m.style }

// styled applies an inline style for role when inline styling is on.
func (m *ModuleRenderer) styled(e *markup.Element, role string) *markup.Element {
	if m.style.InlineStyles {
		if css, ok := lmsInline[role]; ok {
			e.Style(css)
		}
	}
	return e
}

// Section renders the module at position idx as a fragment. The image is
// resolved by module ID first, then by position.
func (m *ModuleRenderer) Section(c *course.Course, idx int, imgs course.ImageMap) (*markup.Element, error) {
	if err := checkCourse(c); err != nil {
		return nil, err
	}
	mod, ok := c.ModuleAt(idx)
	if !ok {
		return nil, fmt.Errorf("%w: %d of %d", ErrModuleIndex, idx, len(c.Modules))
	}
	total := len(c.Modules)
	pos := idx + 1

	section := m.styled(markup.El("section").Class("module-section"), "section").
		Attr("id", strings.TrimSuffix(ModuleFileName(pos, total), ".html"))

	section.Append(
		m.header(mod, pos, total),
		m.image(mod, idx, imgs),
		m.description(mod),
		m.keyPoints(mod),
		m.quiz(mod),
	)
	if m.style.ShowCourseContext {
		section.Append(m.courseContext(c, pos, total))
	}
	return section, nil
}

// Page renders the module at position idx as a complete HTML document.
func (m *ModuleRenderer) Page(c *course.Course, idx int, imgs course.ImageMap) (*markup.Document, error) {
	section, err := m.Section(c, idx, imgs)
	if err != nil {
		return nil, err
	}
	mod := c.Modules[idx]

	title := mod.Title + " - " + c.Title
	if m.style.PrefixTitle {
		title = fmt.Sprintf("%s %d: %s - %s", m.labels.Module, idx+1, mod.Title, c.Title)
	}

	container := markup.El("div", section).Class("container")
	if m.style.ShowCredits {
		container.Append(m.footer())
	}
	return &markup.Document{
		Lang:  m.lang,
		Title: title,
		Meta:  map[string]string{"generator": m.branding.AppName},
		Head:  []markup.Node{markup.StyleSheet(m.style.StyleSheet)},
		Body:  markup.El("body", container),
	}, nil
}

// HTML renders the module page to bytes.
func (m *ModuleRenderer) HTML(c *course.Course, idx int, imgs course.ImageMap) ([]byte, error) {
	doc, err := m.Page(c, idx, imgs)
	if err != nil {
		return nil, err
	}
	return []byte(markup.Render(doc)), nil
}

func (m *ModuleRenderer) header(mod course.Module, pos, total int) markup.Node {
	h := markup.El("header").Class("module-header")
	if m.style.ShowBackLink {
		h.Append(markup.El("a", markup.Text(m.labels.BackToCourse)).
			Attr("href", "index.html").Class("back-link"))
	}

	h.Append(m.styled(markup.El("span",
		markup.Textf("%s %d %s %d", m.labels.Module, pos, m.labels.Of, total)).
		Class("module-number"), "number"))
	if m.style.PrefixTitle {
		h.Append(m.styled(markup.El(m.style.TitleTag,
			markup.Textf("%s %d: %s", m.labels.Module, pos, mod.Title)), "title"))
	} else {
		h.Append(markup.El(m.style.TitleTag, markup.Text(mod.Title)))
	}

	if mod.Subtitle != "" {
		h.Append(m.styled(markup.El("p", markup.Text(mod.Subtitle)).Class("module-subtitle"), "subtitle"))
	}
	return h
}

// image renders the resolved image, a placeholder carrying the visual
// prompt, or nothing.
func (m *ModuleRenderer) image(mod course.Module, idx int, imgs course.ImageMap) markup.Node {
	prompt := strings.TrimSpace(mod.VisualPrompt)
	src, ok := imgs.Resolve(mod, idx)
	if !ok {
		if prompt == "" {
			return nil
		}
		return m.styled(markup.El("div",
			markup.El("p", markup.Textf("%s: %s", m.labels.SuggestedImage, prompt)).Class("image-caption"),
		).Class("module-image-placeholder"), "placeholder")
	}

	fig := m.styled(markup.El("figure",
		m.styled(markup.El("img").Attr("src", src).Attr("alt", mod.Title), "img"),
	).Class("module-image"), "image")
	if prompt != "" {
		fig.Append(markup.El("figcaption", markup.Text(prompt)).Class("image-caption"))
	}
	return fig
}

// Paragraphs splits text on newlines, trims each segment and drops the
// empty ones.
func Paragraphs(text string) []string {
	var out []string
	for _, seg := range strings.Split(text, "\n") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func (m *ModuleRenderer) description(mod course.Module) markup.Node {
	paras := Paragraphs(mod.Description)
	if len(paras) == 0 {
		return nil
	}
	div := m.styled(markup.El("div").Class("description"), "description")
	for _, p := range paras {
		div.Append(m.styled(markup.El("p", markup.Text(p)), "paragraph"))
	}
	if !m.style.DescriptionHeading {
		return div
	}
	return markup.Fragment(
		m.styled(markup.El("h3", markup.Text(m.labels.Description)), "heading"),
		div,
	)
}

func (m *ModuleRenderer) keyPoints(mod course.Module) markup.Node {
	if len(mod.KeyPoints) == 0 {
		return nil
	}
	list := m.styled(markup.El("ul"), "list")
	for _, kp := range mod.KeyPoints {
		list.Append(m.styled(markup.El("li", markup.Text(kp)), "item"))
	}
	return markup.El("div",
		m.styled(markup.El("h3", markup.Text(m.labels.KeyPoints)), "heading"),
		list,
	).Class("key-points")
}

func (m *ModuleRenderer) quiz(mod course.Module) markup.Node {
	if len(mod.Quiz) == 0 {
		return nil
	}
	sec := markup.El("div",
		m.styled(markup.El("h3", markup.Text(m.labels.Quiz)), "heading"),
	).Class("quiz-section")

	for qi, q := range mod.Quiz {
		prompt := markup.Textf("%d. %s", qi+1, q.Question)
		if m.style.LabelQuestions {
			prompt = markup.Textf("%s %d: %s", m.labels.Question, qi+1, q.Question)
		}

		opts := m.styled(markup.El("ul").Class("quiz-options"), "options")
		for _, opt := range q.Options {
			opts.Append(m.option(q, opt))
		}

		sec.Append(m.styled(markup.El("div",
			m.styled(markup.El("p", prompt).Class("question"), "question"),
			opts,
		).Class("quiz-item"), "quiz"))
	}
	return sec
}

func (m *ModuleRenderer) option(q course.QuizQuestion, opt course.QuizOption) markup.Node {
	li := markup.El("li",
		markup.El("strong", markup.Textf("%s)", opt.Label)),
		markup.Text(" "+opt.Text),
	)
	if !q.IsCorrect(opt) {
		return m.styled(li, "option")
	}
	li.Class("correct")
	li.Append(markup.Text(" "), m.styled(
		markup.El("span", markup.Textf("(%s)", m.labels.Correct)).Class("correct-badge"), "badge"))
	return m.styled(li, "correct")
}

func (m *ModuleRenderer) courseContext(c *course.Course, pos, total int) markup.Node {
	return markup.El("div",
		markup.El("strong", markup.Textf("%s:", m.labels.CourseContext)), markup.Text(" "+c.Title),
		markup.El("br"),
		markup.El("strong", markup.Textf("%s:", m.labels.Module)), markup.Textf(" %d %s %d", pos, m.labels.Of, total),
		markup.El("br"),
		markup.El("strong", markup.Textf("%s:", m.labels.Exported)), markup.Text(" "+m.exportedAt().Format("2006-01-02 15:04:05 MST")),
	).Class("course-context")
}
