// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v2"

	"github.com/jeranaias/curriculumlab/internal/export"
)

var previewCommand = &cli.Command{
	Name:      "preview",
	Usage:     "Render a Markdown or JSON export in the terminal",
	ArgsUsage: " ",
	Flags: concatFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   "Preview format: markdown, json, lms-json",
				Value:   "markdown",
			},
			&cli.IntFlag{
				Name:    "module",
				Aliases: []string{"n"},
				Usage:   "Preview one module (starting at 1) instead of the whole course",
			},
		},
		courseFlags,
	),
	Action: runPreview,
}

func runPreview(c *cli.Context) error {
	e := envFrom(c)

	f, err := previewFormat(c.String("format"), c.Int("module"))
	if err != nil {
		return err
	}
	crs, imgs, err := e.loadCourse(c)
	if err != nil {
		return err
	}

	p, err := e.svc.Export(c.Context, export.Request{
		Format: f,
		Course: crs,
		Images: imgs,
		Module: c.Int("module") - 1,
	})
	if err != nil {
		return err
	}

	text := string(p.Data)
	// Piped output stays byte-exact.
	if !isTerminalWriter(e.out) || !ColorsEnabled() {
		fmt.Fprint(e.out, text)
		return nil
	}

	switch f {
	case export.FormatMarkdown, export.FormatModuleMarkdown:
		text = RenderMarkdown(text, GetTerminalWidth(), "auto")
	default:
		text = HighlightJSON(text)
	}
	fmt.Fprint(e.out, text)
	return nil
}

// previewFormat maps the preview flags to an export format.
func previewFormat(name string, module int) (export.Format, error) {
	f, err := export.ParseFormat(name)
	if err != nil {
		return "", err
	}
	switch f {
	case export.FormatMarkdown, export.FormatJSON, export.FormatLMSJSON:
	default:
		return "", fmt.Errorf("%w: %s cannot be previewed", export.ErrUnknownFormat, name)
	}
	if module <= 0 {
		return f, nil
	}
	if f == export.FormatMarkdown {
		return export.FormatModuleMarkdown, nil
	}
	return export.FormatModuleJSON, nil
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderMarkdown renders Markdown for terminal display with glamour. style
// is a glamour standard style name or "auto". The input is returned
// unchanged if rendering fails.
func RenderMarkdown(content string, width int, style string) string {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}

// HighlightJSON applies terminal syntax highlighting to JSON with chroma.
// The input is returned unchanged if highlighting fails.
func HighlightJSON(code string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
