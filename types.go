package mdsite

import (
	"fmt"
	"time"

	"github.com/alnah/go-mdsite/internal/frontmatter"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Document is a markdown source split into its flat metadata and body.
type Document = frontmatter.Document

// Renderer is the set of override points consulted while rendering markdown:
// headings, code blocks and image syntax. Implementations must be safe for
// concurrent use.
type Renderer = pipeline.Renderer

// Types passed to a Renderer.
type (
	Heading   = pipeline.Heading
	CodeBlock = pipeline.CodeBlock
	MediaLink = pipeline.MediaLink
)

// DefaultRenderer renders permalinked headings, chroma-highlighted code and
// embedded video/audio players. Embed it to override a single method.
type DefaultRenderer = pipeline.DefaultRenderer

// NewDefaultRenderer creates a DefaultRenderer for a chroma style name.
func NewDefaultRenderer(highlightStyle string) *DefaultRenderer {
	return pipeline.NewDefaultRenderer(highlightStyle)
}

// Site describes one build: where documents come from and where pages go.
type Site struct {
	SourceDir string   // root of the markdown tree (required)
	OutputDir string   // root of the generated pages (required)
	Exclude   []string // directory names skipped during discovery
	MaxDepth  int      // directory levels below SourceDir to enter, 0 = unlimited
	Workers   int      // concurrent documents, 0 = auto

	// Progress, when set, is called once per finished page from the
	// goroutine running BuildSite.
	Progress func(PageResult)
}

// PageResult holds the outcome of a single document.
type PageResult struct {
	Source   string
	Output   string
	Missing  []string // template keys left without a value
	Err      error
	Duration time.Duration
}

// Report holds the outcome of a site build, in discovery order.
type Report struct {
	Pages    []PageResult
	Workers  int
	Duration time.Duration
}

// Failed returns the number of pages that could not be built.
func (r *Report) Failed() int {
	n := 0
	for _, p := range r.Pages {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// Succeeded returns the number of pages written.
func (r *Report) Succeeded() int {
	return len(r.Pages) - r.Failed()
}

// Err returns an ErrPagesFailed error when at least one page failed.
func (r *Report) Err() error {
	if n := r.Failed(); n > 0 {
		return fmt.Errorf("%d %w", n, ErrPagesFailed)
	}
	return nil
}

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds the values collected from options.
type builderConfig struct {
	templateSetName string
	templateSet     *TemplateSet
	assetPath       string
	assetLoader     AssetLoader
	style           string
	highlightStyle  string
	renderer        Renderer
	unsafeHTML      bool
	hardWraps       bool
	sanitize        bool
	tocPlaceholder  string
	now             func() time.Time
}

// WithTemplateSet selects a template set by name, or by directory path when
// the name contains a path separator.
func WithTemplateSet(name string) Option {
	return func(b *Builder) {
		b.cfg.templateSetName = name
	}
}

// WithTemplates uses the given templates instead of loading a template set.
func WithTemplates(ts *TemplateSet) Option {
	return func(b *Builder) {
		b.cfg.templateSet = ts
	}
}

// WithAssetPath sets a directory of custom styles and template sets.
// Assets missing from it fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(b *Builder) {
		b.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom AssetLoader. It takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(b *Builder) {
		b.cfg.assetLoader = loader
	}
}

// WithStyle selects the site stylesheet injected into every page.
func WithStyle(name string) Option {
	return func(b *Builder) {
		b.cfg.style = name
	}
}

// WithHighlightStyle selects the chroma style used for code blocks.
func WithHighlightStyle(style string) Option {
	return func(b *Builder) {
		b.cfg.highlightStyle = style
	}
}

// WithRenderer replaces the default heading, code and media rendering.
func WithRenderer(r Renderer) Option {
	return func(b *Builder) {
		b.cfg.renderer = r
	}
}

// WithUnsafeHTML passes raw HTML in markdown through to the pages.
func WithUnsafeHTML(unsafe bool) Option {
	return func(b *Builder) {
		b.cfg.unsafeHTML = unsafe
	}
}

// WithHardWraps renders newlines inside paragraphs as line breaks.
func WithHardWraps(hardWraps bool) Option {
	return func(b *Builder) {
		b.cfg.hardWraps = hardWraps
	}
}

// WithSanitize filters every rendered body through an HTML sanitizer.
func WithSanitize(sanitize bool) Option {
	return func(b *Builder) {
		b.cfg.sanitize = sanitize
	}
}

// WithTOCPlaceholder sets the paragraph text replaced by a table of contents.
// An empty placeholder keeps the default "[TOC]".
func WithTOCPlaceholder(placeholder string) Option {
	return func(b *Builder) {
		b.cfg.tocPlaceholder = placeholder
	}
}

// WithNow sets the clock used to resolve "auto" dates in front matter.
// Panics if now is nil.
func WithNow(now func() time.Time) Option {
	if now == nil {
		panic("mdsite: WithNow clock must not be nil")
	}
	return func(b *Builder) {
		b.cfg.now = now
	}
}
