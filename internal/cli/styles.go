// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for curriculumlab commands.
//
// Colors are disabled for non-TTY output and when NO_COLOR is set.
// FORCE_COLOR overrides detection.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/curriculumlab/internal/util"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	// SuccessStyle is used for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")). // Green
			Bold(true)

	// ErrorStyle is used for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// WarningStyle is used for warnings and lint findings
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Yellow/Orange

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")) // Dim gray

	// SeparatorStyle is used for visual separators
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dark gray
)

// =============================================================================
// HELPERS
// =============================================================================

// RenderConditional renders text with style if colors are enabled,
// otherwise returns the text unmodified.
func RenderConditional(style lipgloss.Style, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return style.Render(text)
}

// RenderSeparator renders a horizontal separator line. Default width is 70.
func RenderSeparator(width ...int) string {
	w := 70
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return RenderConditional(SeparatorStyle, strings.Repeat("=", w))
}

// RenderStatus renders a status tag.
func RenderStatus(status string) string {
	switch strings.ToLower(status) {
	case "ok", "success":
		return RenderConditional(SuccessStyle, "[OK]")
	case "error", "fail":
		return RenderConditional(ErrorStyle, "[FAIL]")
	case "warning", "warn":
		return RenderConditional(WarningStyle, "[WARN]")
	default:
		return RenderConditional(DimStyle, "["+strings.ToUpper(status)+"]")
	}
}

// =============================================================================
// TABLES
// =============================================================================

// Table renders aligned columns. Widths are measured in display columns so
// accented and wide characters line up.
type Table struct {
	Headers []string
	// MaxWidth caps each column; zero means no cap.
	MaxWidth []int
	rows     [][]string
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// String renders the table with a header and a separator.
func (t *Table) String() string {
	cols := len(t.Headers)
	widths := make([]int, cols)
	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		s := util.SingleLine(row[i])
		if i < len(t.MaxWidth) && t.MaxWidth[i] > 0 {
			s = util.TruncateWidth(s, t.MaxWidth[i])
		}
		return s
	}

	for i := 0; i < cols; i++ {
		widths[i] = util.StringWidth(cell(t.Headers, i))
		for _, row := range t.rows {
			if w := util.StringWidth(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string, style *lipgloss.Style) {
		for i := 0; i < cols; i++ {
			text := cell(row, i)
			if i < cols-1 {
				text = util.PadRight(text, widths[i]) + "  "
			}
			if style != nil {
				text = RenderConditional(*style, text)
			}
			b.WriteString(text)
		}
		b.WriteString("\n")
	}

	writeRow(t.Headers, &TitleStyle)
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	if total > 2 {
		total -= 2
	}
	b.WriteString(RenderSeparator(total))
	b.WriteString("\n")
	for _, row := range t.rows {
		writeRow(row, nil)
	}
	return b.String()
}
