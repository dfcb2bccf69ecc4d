// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// FILE NAMES
// =============================================================================

// defaultBase is used when a title has no usable characters.
const defaultBase = "curso"

// FileBase derives a filesystem-safe base name from a title. Diacritics are
// folded to their base letter, then every character outside [A-Za-z0-9] is
// replaced by an underscore. "Archive & Memory" becomes "Archive___Memory".
func FileBase(title string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(title))
	if err != nil {
		folded = strings.TrimSpace(title)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	base := b.String()
	if strings.Trim(base, "_") == "" {
		return defaultBase
	}
	return base
}

// IndexWidth is the zero-padding width for module file names. It is at
// least two and grows with the module count so names never collide.
func IndexWidth(total int) int {
	w := len(strconv.Itoa(total))
	if w < 2 {
		return 2
	}
	return w
}

// ModuleFileName returns the bundle page name for the module at the
// 1-based position pos, e.g. "module-01.html".
func ModuleFileName(pos, total int) string {
	return fmt.Sprintf("module-%0*d.html", IndexWidth(total), pos)
}

// CourseFileName returns the download name for a whole-course format.
func CourseFileName(title string, f Format) string {
	base := FileBase(title)
	switch f {
	case FormatLMSJSON:
		base += "_lms"
	case FormatLMS:
		base += "_canvas"
	}
	return base + f.FileExtension()
}

// ModuleDocName returns the download name for a single-module document.
// prefix is the localized word for "module" without diacritics.
func ModuleDocName(prefix string, pos int, title string, f Format) string {
	return fmt.Sprintf("%s_%d_%s%s", FileBase(prefix), pos, FileBase(title), f.FileExtension())
}
