// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import "strings"

// htmlReplacer works in a single pass, so entities it emits are never
// escaped a second time.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape replaces the five HTML-significant characters with entities.
// Values that are not strings (including nil) yield an empty string so a
// missing optional field never reaches a page as "<nil>".
func Escape(v any) string {
	switch s := v.(type) {
	case string:
		return htmlReplacer.Replace(s)
	case *string:
		if s == nil {
			return ""
		}
		return htmlReplacer.Replace(*s)
	default:
		return ""
	}
}
