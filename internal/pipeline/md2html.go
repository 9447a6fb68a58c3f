package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Conversion errors.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrRenderPanic    = errors.New("panic while rendering document")
)

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterConfig)

type converterConfig struct {
	renderer  Renderer
	unsafe    bool
	hardWraps bool
}

// WithRenderer sets the Renderer consulted for headings, code and images.
func WithRenderer(r Renderer) ConverterOption {
	return func(c *converterConfig) { c.renderer = r }
}

// WithUnsafeHTML passes raw HTML in the markdown through to the output.
func WithUnsafeHTML(unsafe bool) ConverterOption {
	return func(c *converterConfig) { c.unsafe = unsafe }
}

// WithHardWraps renders newlines inside paragraphs as <br>.
func WithHardWraps(hardWraps bool) ConverterOption {
	return func(c *converterConfig) { c.hardWraps = hardWraps }
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark (pure Go).
// Each converter owns its goldmark instance; Renderers are passed in, never patched.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and the
// heading, code and image overrides of the configured Renderer
// (a DefaultRenderer when none is given).
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	cfg := converterConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.renderer == nil {
		cfg.renderer = &DefaultRenderer{
			Highlighter: NewCodeHighlighter(DefaultHighlightStyle),
			Unsafe:      cfg.unsafe,
		}
	}

	var rendererOpts []goldmark.Option
	if cfg.unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	if cfg.hardWraps {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithHardWraps()))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			&overrides{renderer: cfg.renderer},
		),
	}, rendererOpts...)...)

	return &GoldmarkConverter{md: md}
}

// Markdown exposes the underlying goldmark instance, e.g. to share its parser.
func (c *GoldmarkConverter) Markdown() goldmark.Markdown {
	return c.md
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrRenderPanic, r)}
			}
		}()

		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %w", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
