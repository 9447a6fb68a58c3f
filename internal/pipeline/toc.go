package pipeline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// DefaultTOCPlaceholder is the token replaced by a generated table of contents.
const DefaultTOCPlaceholder = "[TOC]"

// tocIndent is one nesting level of the generated list.
const tocIndent = "  "

// defaultTOCExpander backs ExpandTOC.
var defaultTOCExpander = NewTOCExpander(
	goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser(),
	DefaultTOCPlaceholder,
)

// ExpandTOC replaces [TOC] placeholders outside code with a nested markdown
// list linking every heading of body.
func ExpandTOC(body string) string {
	return defaultTOCExpander.Expand(body)
}

// TOCExpander rewrites placeholder tokens in markdown source into a table of contents.
// It is safe for concurrent use: all per-document state lives in Expand.
type TOCExpander struct {
	placeholder string
	parser      parser.Parser
}

// NewTOCExpander creates a TOCExpander that finds headings with p.
// p should be the parser of the converter that renders the expanded text,
// so both agree on which lines are headings. An empty placeholder selects
// DefaultTOCPlaceholder.
func NewTOCExpander(p parser.Parser, placeholder string) *TOCExpander {
	if placeholder == "" {
		placeholder = DefaultTOCPlaceholder
	}
	return &TOCExpander{placeholder: placeholder, parser: p}
}

// Placeholder returns the token this expander replaces.
func (t *TOCExpander) Placeholder() string {
	return t.placeholder
}

// Expand replaces each placeholder occurrence that is not inside code with
// its own copy of the table of contents. Code is fenced, indented or inline
// code, including code nested in lists and block quotes. Occurrences inside
// code are kept verbatim, and body is returned unchanged when nothing outside
// code matches.
func (t *TOCExpander) Expand(body string) string {
	if !strings.Contains(body, t.placeholder) {
		return body
	}

	var (
		out strings.Builder
		doc *outline
		toc string
	)
	out.Grow(len(body))

	for _, sp := range tokenize(body) {
		segment := body[sp.start:sp.end]
		if sp.kind != spanPlain || !strings.Contains(segment, t.placeholder) {
			out.WriteString(segment)
			continue
		}
		if doc == nil {
			doc = t.scan(body)
			toc = renderTOCMarkdown(doc.headings)
		}
		t.replaceOutsideCode(&out, body, sp, doc.code, toc)
	}

	return out.String()
}

// replaceOutsideCode writes body[sp.start:sp.end] with toc in place of every
// placeholder that does not overlap a code region.
func (t *TOCExpander) replaceOutsideCode(out *strings.Builder, body string, sp span, code []span, toc string) {
	pos := sp.start
	for {
		i := strings.Index(body[pos:sp.end], t.placeholder)
		if i < 0 {
			break
		}
		at := pos + i
		end := at + len(t.placeholder)
		if overlapsAny(at, end, code) {
			out.WriteString(body[pos:end])
		} else {
			out.WriteString(body[pos:at])
			out.WriteString(toc)
		}
		pos = end
	}
	out.WriteString(body[pos:sp.end])
}

func overlapsAny(start, end int, regions []span) bool {
	for _, r := range regions {
		if start < r.end && r.start < end {
			return true
		}
	}
	return false
}

// Headings returns the headings of body in document order, with the anchors
// the converter assigns to them.
func (t *TOCExpander) Headings(body string) []Heading {
	return t.scan(body).headings
}

// outline is what one parse of a document tells the expander.
type outline struct {
	headings []Heading
	code     []span // code content found by the parser, at any container depth
}

func (o *outline) addCode(kind spanKind, seg text.Segment) {
	if seg.Stop > seg.Start {
		o.code = append(o.code, span{kind: kind, start: seg.Start, end: seg.Stop})
	}
}

func (o *outline) addLines(kind spanKind, lines *text.Segments) {
	for i := 0; i < lines.Len(); i++ {
		o.addCode(kind, lines.At(i))
	}
}

// scan parses body once and collects its headings and code regions.
func (t *TOCExpander) scan(body string) *outline {
	source := []byte(body)
	root := t.parser.Parse(text.NewReader(source))

	slugs := newSlugger()
	doc := &outline{}
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			raw := headingText(n, source)
			doc.headings = append(doc.headings, Heading{
				Level:  n.Level,
				Text:   raw,
				Anchor: slugs.unique(raw),
			})
		case *ast.FencedCodeBlock:
			if n.Info != nil {
				doc.addCode(spanFencedCode, n.Info.Segment)
			}
			doc.addLines(spanFencedCode, n.Lines())
		case *ast.CodeBlock:
			doc.addLines(spanIndentedCode, n.Lines())
		case *ast.CodeSpan:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					doc.addCode(spanInlineCode, txt.Segment)
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return doc
}

// renderTOCMarkdown builds the nested list for headings, framed by blank lines.
// Items are indented by level-1 steps; a heading more than one level below
// its parent is placed one step deeper so the list never turns into an
// indented code block.
func renderTOCMarkdown(headings []Heading) string {
	if len(headings) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")

	var open []int // levels of the enclosing items
	for _, h := range headings {
		for len(open) > 0 && open[len(open)-1] >= h.Level {
			open = open[:len(open)-1]
		}
		b.WriteString(strings.Repeat(tocIndent, len(open)))
		b.WriteString("- [")
		b.WriteString(escapeLinkText(strings.Join(strings.Fields(h.Text), " ")))
		b.WriteString("](#")
		b.WriteString(escapeLinkDestination(h.Anchor))
		b.WriteString(")\n")
		open = append(open, h.Level)
	}

	b.WriteString("\n")
	return b.String()
}

var (
	linkTextEscaper        = strings.NewReplacer(`[`, `\[`, `]`, `\]`)
	linkDestinationEscaper = strings.NewReplacer(
		`\`, `\\`, `(`, `\(`, `)`, `\)`, `<`, `\<`, `>`, `\>`, "`", "\\`", ` `, `%20`,
	)
)

func escapeLinkText(s string) string {
	return linkTextEscaper.Replace(s)
}

func escapeLinkDestination(s string) string {
	return linkDestinationEscaper.Replace(s)
}
