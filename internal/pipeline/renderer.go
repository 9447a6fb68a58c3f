package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Heading is a document heading as seen by a Renderer.
type Heading struct {
	Level  int    // 1-6
	Text   string // raw heading source, used for the anchor
	Anchor string // document-unique anchor id
	HTML   string // rendered inline content
}

// CodeBlock is a fenced or indented code block.
type CodeBlock struct {
	Code     string
	Language string // empty for indented blocks and bare fences
}

// MediaLink is the target of markdown image syntax.
type MediaLink struct {
	Href  string
	Title string
	Alt   string
}

// Renderer is the set of override points consulted while rendering markdown.
// Implementations must be safe for concurrent use.
type Renderer interface {
	Heading(h Heading) string
	Code(block CodeBlock) string
	Image(link MediaLink) (string, error)
}

// DefaultRenderer renders permalinked headings, chroma-highlighted code and
// embedded video/audio players.
type DefaultRenderer struct {
	Highlighter *CodeHighlighter
	Unsafe      bool // keep script-capable media URLs
}

// NewDefaultRenderer creates a DefaultRenderer highlighting with the given chroma style.
func NewDefaultRenderer(style string) *DefaultRenderer {
	return &DefaultRenderer{Highlighter: NewCodeHighlighter(style)}
}

// Heading renders h with a self-link to its anchor.
func (r *DefaultRenderer) Heading(h Heading) string {
	return headingHTML(h.Level, h.Anchor, h.HTML)
}

// Code renders a highlighted block when the language is known, a plain one otherwise.
func (r *DefaultRenderer) Code(block CodeBlock) string {
	return r.Highlighter.Render(block.Code, block.Language)
}

// Image renders embeds for known media and a plain <img> otherwise.
func (r *DefaultRenderer) Image(link MediaLink) (string, error) {
	return renderMedia(link, r.Unsafe)
}

// Compile-time interface check.
var _ Renderer = (*DefaultRenderer)(nil)

// overrides is a goldmark extension routing headings, code blocks and images
// to a Renderer.
type overrides struct {
	renderer Renderer
}

// Extend implements goldmark.Extender.
func (e *overrides) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&headingIDTransformer{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&overrideNodeRenderer{renderer: e.renderer, inline: m.Renderer()}, 100),
	))
}

// headingIDTransformer assigns document-unique anchors to headings and turns
// links to those anchors into headingLink nodes.
// The slugger lives for one Transform call, i.e. one document.
type headingIDTransformer struct{}

func (t *headingIDTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	slugs := newSlugger()
	anchors := make(map[string]bool)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		anchor := slugs.unique(headingText(h, source))
		anchors[anchor] = true
		h.SetAttributeString("id", []byte(anchor))
		return ast.WalkSkipChildren, nil
	})
	if len(anchors) == 0 {
		return
	}

	var links []*ast.Link
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if l, ok := n.(*ast.Link); ok && entering && l.Title == nil {
			if dest := resolveDestination(l.Destination); strings.HasPrefix(dest, "#") && anchors[dest[1:]] {
				links = append(links, l)
			}
		}
		return ast.WalkContinue, nil
	})
	for _, l := range links {
		replaceWithHeadingLink(l, resolveDestination(l.Destination)[1:])
	}
}

// resolveDestination undoes backslash escapes and character references in a
// raw link destination, as goldmark does when it writes the href.
func resolveDestination(raw []byte) string {
	dest := util.UnescapePunctuations(bytes.Clone(raw))
	dest = util.ResolveNumericReferences(dest)
	return string(util.ResolveEntityNames(dest))
}

// kindHeadingLink is the node kind of headingLink.
var kindHeadingLink = ast.NewNodeKind("HeadingLink")

// headingLink is a link to a heading of the same document. Its href is
// written like the heading's own permalink, without URL escaping, so both
// carry the same bytes.
type headingLink struct {
	ast.BaseInline
	anchor string
}

// Kind implements ast.Node.
func (n *headingLink) Kind() ast.NodeKind { return kindHeadingLink }

// Dump implements ast.Node.
func (n *headingLink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Anchor": n.anchor}, nil)
}

// replaceWithHeadingLink swaps l for a headingLink holding l's children.
func replaceWithHeadingLink(l *ast.Link, anchor string) {
	hl := &headingLink{anchor: anchor}
	parent := l.Parent()
	parent.ReplaceChild(parent, l, hl)
	for c := l.FirstChild(); c != nil; {
		next := c.NextSibling()
		hl.AppendChild(hl, c)
		c = next
	}
}

// overrideNodeRenderer hands goldmark nodes to a Renderer.
type overrideNodeRenderer struct {
	renderer Renderer
	inline   renderer.Renderer // renders heading children
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *overrideNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
	reg.Register(ast.KindCodeBlock, r.renderCode)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(kindHeadingLink, r.renderHeadingLink)
}

func (r *overrideNodeRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Heading)

	var inner bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := r.inline.Render(&inner, source, c); err != nil {
			return ast.WalkStop, err
		}
	}

	anchor := ""
	if v, ok := n.AttributeString("id"); ok {
		if b, ok := v.([]byte); ok {
			anchor = string(b)
		}
	}
	if anchor == "" {
		anchor = Slugify(headingText(n, source))
	}

	_, _ = w.WriteString(r.renderer.Heading(Heading{
		Level:  n.Level,
		Text:   headingText(n, source),
		Anchor: anchor,
		HTML:   inner.String(),
	}))
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

func (r *overrideNodeRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	_, _ = w.WriteString(r.renderer.Code(CodeBlock{
		Code:     blockLines(n, source),
		Language: string(n.Language(source)),
	}))
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

func (r *overrideNodeRenderer) renderCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(r.renderer.Code(CodeBlock{Code: blockLines(node, source)}))
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

func (r *overrideNodeRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	fragment, err := r.renderer.Image(MediaLink{
		Href:  string(n.Destination),
		Title: string(n.Title),
		Alt:   plainText(n, source),
	})
	if err != nil {
		return ast.WalkStop, errorf(node.Kind(), err)
	}
	_, _ = w.WriteString(fragment)
	return ast.WalkSkipChildren, nil
}

func (r *overrideNodeRenderer) renderHeadingLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<a href="` + anchorHref(node.(*headingLink).anchor) + `">`)
	} else {
		_, _ = w.WriteString("</a>")
	}
	return ast.WalkContinue, nil
}

// headingText returns the raw source of a heading, one line per source line.
func headingText(n *ast.Heading, source []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(source))))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// blockLines concatenates the lines of a code block.
func blockLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

// plainText collects the text content of n's descendants, as used for alt text.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.RawHTML, *ast.AutoLink:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// errorf wraps a renderer failure with the offending node kind.
func errorf(kind ast.NodeKind, err error) error {
	return fmt.Errorf("rendering %s: %w", kind, err)
}
