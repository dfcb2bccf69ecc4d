// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// =============================================================================
// NODES
// =============================================================================

// Node is a piece of an HTML document.
type Node interface {
	writeHTML(b *strings.Builder)
}

// voidTags never have children or a closing tag.
var voidTags = map[string]bool{
	"meta": true, "img": true, "br": true, "hr": true, "link": true,
}

// blockTags are followed by a newline when rendered, to keep output readable.
var blockTags = map[string]bool{
	"html": true, "head": true, "body": true, "title": true, "meta": true, "style": true,
	"div": true, "header": true, "footer": true, "main": true, "section": true, "article": true, "nav": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "p": true, "ul": true, "ol": true, "li": true, "hr": true,
}

type attr struct {
	key string
	val string
}

// Element is an HTML element with attributes and children.
type Element struct {
	tag      string
	attrs    []attr
	children []Node
}

// El creates an element. The tag name is trusted and must be a literal.
func El(tag string, children ...Node) *Element {
	e := &Element{tag: tag}
	return e.Append(children...)
}

// Attr sets an attribute. Values are escaped on render.
func (e *Element) Attr(key, val string) *Element {
	e.attrs = append(e.attrs, attr{key: key, val: val})
	return e
}

// Class sets the class attribute.
func (e *Element) Class(class string) *Element {
	return e.Attr("class", class)
}

// Style sets an inline style attribute.
func (e *Element) Style(style string) *Element {
	return e.Attr("style", style)
}

// Append adds children. Nil children are skipped.
func (e *Element) Append(children ...Node) *Element {
	for _, c := range children {
		if c != nil {
			e.children = append(e.children, c)
		}
	}
	return e
}

func (e *Element) writeHTML(b *strings.Builder) {
	b.WriteString("<")
	b.WriteString(e.tag)
	for _, a := range e.attrs {
		b.WriteString(" ")
		b.WriteString(a.key)
		b.WriteString(`="`)
		b.WriteString(Escape(a.val))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	if voidTags[e.tag] {
		if blockTags[e.tag] {
			b.WriteString("\n")
		}
		return
	}
	for _, c := range e.children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteString(">")
	if blockTags[e.tag] {
		b.WriteString("\n")
	}
}

type text string

func (t text) writeHTML(b *strings.Builder) {
	b.WriteString(Escape(string(t)))
}

// Text creates an escaped text node.
func Text(s string) Node {
	return text(s)
}

// Textf formats and escapes the result as one text node.
func Textf(format string, args ...any) Node {
	return text(fmt.Sprintf(format, args...))
}

type fragment []Node

func (f fragment) writeHTML(b *strings.Builder) {
	for _, n := range f {
		n.writeHTML(b)
	}
}

// Fragment groups nodes without a wrapping element. An empty fragment
// renders nothing.
func Fragment(nodes ...Node) Node {
	out := make(fragment, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

type comment string

func (c comment) writeHTML(b *strings.Builder) {
	b.WriteString("<!-- ")
	b.WriteString(Escape(string(c)))
	b.WriteString(" -->\n")
}

// Comment creates an HTML comment. The content is escaped so it cannot
// terminate the comment early.
func Comment(s string) Node {
	return comment(s)
}

type trusted string

func (t trusted) writeHTML(b *strings.Builder) {
	b.WriteString(string(t))
}

// StyleSheet creates a <style> element holding css verbatim. css must be a
// constant owned by the caller, never user or model supplied text.
func StyleSheet(css string) *Element {
	return El("style", trusted(css))
}

// =============================================================================
// DOCUMENTS
// =============================================================================

// Document is a complete HTML page.
type Document struct {
	Lang  string
	Title string
	Meta  map[string]string
	Head  []Node
	Body  *Element
}

func (d *Document) writeHTML(b *strings.Builder) {
	b.WriteString("<!DOCTYPE html>\n")

	root := El("html")
	if d.Lang != "" {
		root.Attr("lang", d.Lang)
	}

	head := El("head",
		El("meta").Attr("charset", "UTF-8"),
		El("meta").Attr("name", "viewport").Attr("content", "width=device-width, initial-scale=1.0"),
	)
	for _, name := range sortedKeys(d.Meta) {
		head.Append(El("meta").Attr("name", name).Attr("content", d.Meta[name]))
	}
	head.Append(El("title", Text(d.Title)))
	head.Append(d.Head...)

	body := d.Body
	if body == nil {
		body = El("body")
	}
	root.Append(head, body)
	root.writeHTML(b)
}

// =============================================================================
// RENDERING
// =============================================================================

// Render returns the HTML for n.
func Render(n Node) string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

// WriteTo writes the HTML for n to w.
func WriteTo(w io.Writer, n Node) (int64, error) {
	written, err := io.WriteString(w, Render(n))
	return int64(written), err
}

// sortedKeys keeps meta tag order stable across renders.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
