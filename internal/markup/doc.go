// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup builds HTML documents from a small tree of typed nodes.
//
// Text and attribute values are escaped when the tree is rendered, so callers
// never interpolate strings into markup by hand. The Node interface has an
// unexported method: only this package can create nodes, which keeps the
// escaping boundary in one place.
//
// # Usage
//
//	page := markup.El("div").Class("card").Append(
//	    markup.El("h3").Append(markup.Text(title)),
//	    markup.El("a").Attr("href", "module-01.html").Append(markup.Text("open")),
//	)
//	html := markup.Render(page)
package markup
