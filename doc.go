// Package mdsite builds a static HTML site from a tree of markdown documents.
//
// # Quick Start
//
// Create a builder and build a directory:
//
//	b, err := mdsite.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := b.BuildSite(ctx, mdsite.Site{
//	    SourceDir: "docs",
//	    OutputDir: "dist",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := report.Err(); err != nil {
//	    log.Fatal(err) // e.g. "1 page(s) failed"
//	}
//
// Every docs/a/b.md becomes dist/a/b.html. Links between documents
// (href="guide.md#setup") are rewritten to the generated pages.
//
// # Build Pipeline
//
// Each document goes through these stages:
//
//  1. Front matter split: the leading "---" YAML block becomes flat string
//     metadata, the rest is the markdown body
//  2. TOC expansion: a paragraph made only of "[TOC]" becomes a nested list
//     linking every heading outside code fences
//  3. Markdown to HTML via goldmark (GFM tables, strikethrough, autolinks,
//     task lists) with permalinked headings, chroma-highlighted code and
//     embedded video/audio players for media links
//  4. Composition into the page layout: {{ content }}, {{ navigationBar }}
//     and one {{ key }} per metadata field, plus the site and highlight CSS
//
// Documents are independent and run on a bounded worker pool (Site.Workers).
// A failing document is reported in its PageResult; the others are still
// written.
//
// # Templates
//
// A template set is a directory holding layout.html and navbar.html. The
// navigation bar is rendered with the page metadata and embedded as
// {{ navigationBar }} in every page except the site root (index.md directly
// under the source directory). Placeholders without a value are left as is;
// Builder.MissingKeys lists them.
//
// Use WithAssetPath to provide custom styles and template sets, falling back
// to the embedded defaults, or WithTemplates to pass templates directly.
//
// # Custom Rendering
//
// WithRenderer replaces how headings, code blocks and media links are
// rendered. The rest of goldmark's output is unchanged:
//
//	type plainHeadings struct{ *mdsite.DefaultRenderer }
//
//	func (plainHeadings) Heading(h mdsite.Heading) string {
//	    return fmt.Sprintf("<h%d>%s</h%d>", h.Level, h.HTML, h.Level)
//	}
//
//	b, err := mdsite.NewBuilder(mdsite.WithRenderer(
//	    plainHeadings{mdsite.NewDefaultRenderer(mdsite.DefaultHighlightStyle)},
//	))
//
// # Error Handling
//
// Document errors wrap sentinels checkable with errors.Is:
//
//	ErrFrontMatter       - front matter is not a flat YAML mapping
//	ErrUnresolvableEmbed - a media link cannot be embedded
//	ErrHTMLConversion    - markdown rendering failed
//	ErrWritePage         - the page could not be written
//	ErrRenderPanic       - rendering panicked
//
// Builder errors include ErrTemplateSetNotFound, ErrIncompleteTemplateSet,
// ErrInvalidTemplate, ErrInvalidAssetPath and ErrInvalidHighlightStyle.
//
// # Thread Safety
//
// A Builder is read-only after NewBuilder returns and may be shared across
// goroutines. All per-document state (heading anchors, TOC) lives in the
// render call.
package mdsite
