// Package layout composes rendered pages from {{ key }} templates.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Reserved placeholder keys. Metadata never overrides them.
const (
	KeyContent       = "content"
	KeyNavigationBar = "navigationBar"
)

// MaxTemplateSize limits template input (1MB).
const MaxTemplateSize = 1 << 20

// ErrTemplateTooLarge indicates a template over MaxTemplateSize.
var ErrTemplateTooLarge = errors.New("template exceeds maximum size")

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

type token struct {
	placeholder bool
	text        string // literal text, or the key of a placeholder
	raw         string // placeholder source, written back when the key is missing
}

// Template is a parsed page template. It is immutable and safe for concurrent use.
type Template struct {
	tokens []token
}

// Data is the substitution set for one page.
type Data struct {
	Content       string
	NavigationBar string
	Metadata      map[string]string
}

// Parse tokenizes text once into literals and {{ key }} placeholders.
// Keys are made of letters, digits, '_', '.' and '-', with optional spaces
// inside the braces. Anything else, including an unclosed "{{", is literal.
func Parse(text string) (*Template, error) {
	if len(text) > MaxTemplateSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTemplateTooLarge, len(text), MaxTemplateSize)
	}

	var (
		tokens  []token
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{text: literal.String()})
			literal.Reset()
		}
	}

	for rest := text; rest != ""; {
		open := strings.Index(rest, openDelim)
		if open == -1 {
			literal.WriteString(rest)
			break
		}
		literal.WriteString(rest[:open])
		rest = rest[open:]

		end := strings.Index(rest[len(openDelim):], closeDelim)
		if end == -1 {
			literal.WriteString(rest)
			break
		}
		raw := rest[:len(openDelim)+end+len(closeDelim)]
		key := strings.TrimSpace(raw[len(openDelim) : len(raw)-len(closeDelim)])
		if !validKey(key) {
			literal.WriteString(openDelim)
			rest = rest[len(openDelim):]
			continue
		}

		flush()
		tokens = append(tokens, token{placeholder: true, text: key, raw: raw})
		rest = rest[len(raw):]
	}
	flush()

	return &Template{tokens: tokens}, nil
}

// MustParse is Parse for templates known to be valid, such as embedded ones.
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '.', c == '-':
		default:
			return false
		}
	}
	return true
}

// Execute substitutes every placeholder. {{ content }} and {{ navigationBar }}
// take the matching Data fields; other keys take metadata values verbatim.
// Placeholders with no value are left as written. Substituted text is never
// scanned for further placeholders.
func (t *Template) Execute(d Data) string {
	var b strings.Builder
	b.Grow(t.sizeHint(d))

	for _, tok := range t.tokens {
		if !tok.placeholder {
			b.WriteString(tok.text)
			continue
		}
		if v, ok := d.lookup(tok.text); ok {
			b.WriteString(v)
		} else {
			b.WriteString(tok.raw)
		}
	}
	return b.String()
}

func (t *Template) sizeHint(d Data) int {
	n := len(d.Content) + len(d.NavigationBar)
	for _, tok := range t.tokens {
		n += len(tok.text)
	}
	return n
}

func (d Data) lookup(key string) (string, bool) {
	switch key {
	case KeyContent:
		return d.Content, true
	case KeyNavigationBar:
		return d.NavigationBar, true
	}
	v, ok := d.Metadata[key]
	return v, ok
}

// Keys lists the distinct placeholder keys in order of first appearance.
func (t *Template) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, tok := range t.tokens {
		if tok.placeholder && !seen[tok.text] {
			seen[tok.text] = true
			keys = append(keys, tok.text)
		}
	}
	return keys
}

// Missing lists the non-reserved keys that have no value in meta.
func (t *Template) Missing(meta map[string]string) []string {
	var missing []string
	for _, key := range t.Keys() {
		if key == KeyContent || key == KeyNavigationBar {
			continue
		}
		if _, ok := meta[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
