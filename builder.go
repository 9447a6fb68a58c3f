package mdsite

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/frontmatter"
	"github.com/alnah/go-mdsite/internal/layout"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// DefaultTOCPlaceholder is the paragraph replaced by a table of contents.
const DefaultTOCPlaceholder = pipeline.DefaultTOCPlaceholder

// DefaultHighlightStyle is the chroma style used for code blocks.
const DefaultHighlightStyle = pipeline.DefaultHighlightStyle

// Builder turns markdown documents into HTML pages.
// It is read-only after construction and safe for concurrent use.
type Builder struct {
	cfg builderConfig

	assetLoader  AssetLoader
	loader       *frontmatter.Loader
	converter    *pipeline.GoldmarkConverter
	preprocessor pipeline.MarkdownPreprocessor
	sanitizer    *pipeline.Sanitizer // nil unless WithSanitize
	page         *layout.Page
	css          string
	styles       *pipeline.StyleInjector
}

// NewBuilder creates a Builder with the default template set and styles.
// Use options to customize behavior (e.g., WithTemplateSet, WithAssetPath).
// Returns error if assets cannot be loaded or the page template is invalid.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg: builderConfig{
			templateSetName: DefaultTemplateSet,
			style:           DefaultStyle,
			highlightStyle:  DefaultHighlightStyle,
			tocPlaceholder:  DefaultTOCPlaceholder,
			now:             time.Now,
		},
	}

	for _, opt := range opts {
		opt(b)
	}
	b.applyDefaults()

	if err := b.resolveAssetLoader(); err != nil {
		return nil, err
	}
	if !pipeline.HasHighlightStyle(b.cfg.highlightStyle) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHighlightStyle, b.cfg.highlightStyle)
	}

	renderer := b.cfg.renderer
	if renderer == nil {
		renderer = &pipeline.DefaultRenderer{
			Highlighter: pipeline.NewCodeHighlighter(b.cfg.highlightStyle),
			Unsafe:      b.cfg.unsafeHTML,
		}
	}
	b.converter = pipeline.NewGoldmarkConverter(
		pipeline.WithRenderer(renderer),
		pipeline.WithUnsafeHTML(b.cfg.unsafeHTML),
		pipeline.WithHardWraps(b.cfg.hardWraps),
	)
	b.preprocessor = pipeline.NewCommonMarkPreprocessor(b.converter, b.cfg.tocPlaceholder)
	if b.cfg.sanitize {
		b.sanitizer = pipeline.NewSanitizer()
	}
	b.loader = &frontmatter.Loader{Now: b.cfg.now}

	page, err := b.loadPage()
	if err != nil {
		return nil, err
	}
	b.page = page

	css, err := b.loadCSS()
	if err != nil {
		return nil, err
	}
	b.css = css
	b.styles = pipeline.NewStyleInjector(css)

	return b, nil
}

// applyDefaults restores defaults for options explicitly set to empty values,
// as happens when a config field is left blank.
func (b *Builder) applyDefaults() {
	if b.cfg.templateSetName == "" {
		b.cfg.templateSetName = DefaultTemplateSet
	}
	if b.cfg.style == "" {
		b.cfg.style = DefaultStyle
	}
	if b.cfg.highlightStyle == "" {
		b.cfg.highlightStyle = DefaultHighlightStyle
	}
	if b.cfg.now == nil {
		b.cfg.now = time.Now
	}
}

func (b *Builder) resolveAssetLoader() error {
	if b.cfg.assetLoader != nil {
		b.assetLoader = b.cfg.assetLoader
		return nil
	}
	loader, err := NewAssetLoader(b.cfg.assetPath)
	if err != nil {
		return err
	}
	b.assetLoader = loader
	return nil
}

// loadPage parses the layout and navigation bar of the configured template set.
func (b *Builder) loadPage() (*layout.Page, error) {
	ts, err := b.loadTemplateSet()
	if err != nil {
		return nil, err
	}

	tmpl, err := layout.Parse(ts.Layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s layout: %v", ErrInvalidTemplate, ts.Name, err)
	}
	if !slices.Contains(tmpl.Keys(), layout.KeyContent) {
		return nil, fmt.Errorf("%w: %s layout has no {{ %s }} placeholder",
			ErrInvalidTemplate, ts.Name, layout.KeyContent)
	}

	page := &layout.Page{Layout: tmpl}
	if strings.TrimSpace(ts.NavBar) != "" {
		nav, err := layout.Parse(ts.NavBar)
		if err != nil {
			return nil, fmt.Errorf("%w: %s navigation bar: %v", ErrInvalidTemplate, ts.Name, err)
		}
		page.NavBar = nav
	}
	return page, nil
}

func (b *Builder) loadTemplateSet() (*TemplateSet, error) {
	if b.cfg.templateSet != nil {
		return b.cfg.templateSet, nil
	}

	name := b.cfg.templateSetName
	if fileutil.IsFilePath(name) {
		ts, err := assets.LoadTemplateSetDir(name)
		if err != nil {
			return nil, fmt.Errorf("loading template set: %w", convertAssetError(err))
		}
		return NewTemplateSet(ts.Name, ts.Layout, ts.NavBar), nil
	}

	ts, err := b.assetLoader.LoadTemplateSet(name)
	if err != nil {
		return nil, fmt.Errorf("loading template set: %w", err)
	}
	return ts, nil
}

// loadCSS returns the site stylesheet followed by the code highlight rules.
func (b *Builder) loadCSS() (string, error) {
	style, err := b.assetLoader.LoadStyle(b.cfg.style)
	if err != nil {
		return "", fmt.Errorf("loading style: %w", err)
	}
	highlight, err := pipeline.HighlightCSS(b.cfg.highlightStyle)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHighlightStyle, err)
	}
	return style + "\n" + highlight, nil
}

// LoadDocument reads a markdown file and splits off its front matter.
// An "auto" date in the metadata resolves against the Builder's clock.
func (b *Builder) LoadDocument(path string) (*Document, error) {
	return b.loader.Load(path)
}

// ParseDocument is LoadDocument for content already in memory.
func (b *Builder) ParseDocument(path string, content []byte) (*Document, error) {
	return b.loader.Parse(path, content)
}

// RenderDocument renders the markdown body of doc to an HTML fragment:
// TOC expansion, markdown rendering, link rewriting and optional sanitizing.
func (b *Builder) RenderDocument(ctx context.Context, doc *Document) (string, error) {
	if doc == nil {
		return "", ErrNilDocument
	}

	markdown := b.preprocessor.PreprocessMarkdown(ctx, doc.Body)

	fragment, err := b.converter.ToHTML(ctx, markdown)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", doc.SourcePath, err)
	}

	fragment, err = pipeline.RewriteMarkdownLinks(fragment)
	if err != nil {
		return "", fmt.Errorf("rewriting links in %s: %w", doc.SourcePath, err)
	}

	if b.sanitizer != nil {
		fragment = b.sanitizer.Sanitize(fragment)
	}
	return fragment, nil
}

// BuildPage renders doc and composes it into the page template.
// The site root (isRoot) is composed without the navigation bar.
func (b *Builder) BuildPage(ctx context.Context, doc *Document, isRoot bool) ([]byte, error) {
	fragment, err := b.RenderDocument(ctx, doc)
	if err != nil {
		return nil, err
	}

	page := b.page.Compose(fragment, doc.Metadata, isRoot)
	return []byte(b.styles.Inject(page)), nil
}

// MissingKeys lists the template keys that doc's metadata leaves unfilled.
// Such placeholders are kept verbatim in the page.
func (b *Builder) MissingKeys(doc *Document, isRoot bool) []string {
	if doc == nil {
		return nil
	}
	return b.page.Missing(doc.Metadata, isRoot)
}
