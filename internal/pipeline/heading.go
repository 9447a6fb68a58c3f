package pipeline

import (
	"html"
	"strconv"
	"strings"
)

// RenderHeading renders a heading whose anchor is Slugify(text).
// The permalink glyph links to the id set on the heading itself.
func RenderHeading(text string, level int) string {
	return headingHTML(level, Slugify(text), html.EscapeString(text))
}

// headingHTML writes <hN id="anchor"><a href="#anchor">#</a> inner</hN>.
// inner is trusted HTML.
func headingHTML(level int, anchor, inner string) string {
	level = min(max(level, 1), 6)
	tag := "h" + strconv.Itoa(level)
	id := html.EscapeString(anchor)

	var b strings.Builder
	b.Grow(len(inner) + 2*len(id) + 32)
	b.WriteString("<" + tag + ` id="` + id + `">`)
	b.WriteString(`<a href="` + anchorHref(anchor) + `">#</a> `)
	b.WriteString(inner)
	b.WriteString("</" + tag + ">")
	return b.String()
}

// anchorHref is the attribute-escaped href of a link to anchor in the same page.
// Heading permalinks and links to headings share it.
func anchorHref(anchor string) string {
	return "#" + html.EscapeString(anchor)
}
