package pipeline

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/util"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// defaultHighlighter backs RenderCode.
var defaultHighlighter = NewCodeHighlighter(DefaultHighlightStyle)

// RenderCode renders a code block, highlighted when language is known to chroma.
func RenderCode(code, language string) string {
	return defaultHighlighter.Render(code, language)
}

// CodeHighlighter renders code blocks with chroma.
// It is read-only after construction and safe for concurrent use.
type CodeHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewCodeHighlighter creates a CodeHighlighter for a chroma style name.
// Unknown style names fall back to chroma's default style.
func NewCodeHighlighter(style string) *CodeHighlighter {
	if style == "" {
		style = DefaultHighlightStyle
	}
	return &CodeHighlighter{
		style: styles.Get(style),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true), // CSS classes, stylesheet comes from CSS()
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Render returns <pre><code class="language-X"> with highlighted markup when
// chroma has a lexer for language, and a plain escaped <pre><code> otherwise.
// Chroma is never invoked for unknown languages.
func (h *CodeHighlighter) Render(code, language string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		return plainCode(code)
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return plainCode(code)
	}

	highlighted, err := h.highlight(chroma.Coalesce(lexer), code)
	if err != nil {
		return plainCode(code)
	}

	return `<pre><code class="language-` + html.EscapeString(language) + `">` +
		highlighted + `</code></pre>`
}

func (h *CodeHighlighter) highlight(lexer chroma.Lexer, code string) (string, error) {
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenising: %w", err)
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", fmt.Errorf("formatting: %w", err)
	}
	return b.String(), nil
}

// CSS returns the stylesheet for the class-based markup produced by Render.
func (h *CodeHighlighter) CSS() (string, error) {
	var b strings.Builder
	if err := h.formatter.WriteCSS(&b, h.style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return b.String(), nil
}

// HighlightCSS returns the class-based stylesheet for a chroma style name.
func HighlightCSS(style string) (string, error) {
	return NewCodeHighlighter(style).CSS()
}

func plainCode(code string) string {
	return "<pre><code>" + string(util.EscapeHTML([]byte(code))) + "</code></pre>"
}

// SupportsLanguage reports whether chroma can highlight language.
func SupportsLanguage(language string) bool {
	language = strings.TrimSpace(language)
	return language != "" && lexers.Get(language) != nil
}

// HasHighlightStyle reports whether chroma knows the style name.
func HasHighlightStyle(style string) bool {
	_, ok := styles.Registry[style]
	return ok
}
