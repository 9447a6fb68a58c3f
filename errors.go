package mdsite

import (
	"errors"

	"github.com/alnah/go-mdsite/internal/frontmatter"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Document errors. A document failing with one of these does not stop
	// the rest of the build.
	ErrFrontMatter       = frontmatter.ErrFrontMatter
	ErrUnresolvableEmbed = pipeline.ErrUnresolvableEmbed
	ErrHTMLConversion    = pipeline.ErrHTMLConversion
	ErrRenderPanic       = pipeline.ErrRenderPanic
	ErrWritePage         = errors.New("failed to write page")
	ErrNilDocument       = errors.New("document cannot be nil")

	// Site errors.
	ErrEmptySourceDir   = errors.New("source directory cannot be empty")
	ErrInvalidSourceDir = errors.New("invalid source directory")
	ErrNoDocuments      = errors.New("no markdown documents found")
	ErrPagesFailed      = errors.New("page(s) failed")

	// Builder configuration errors.
	ErrInvalidTemplate = errors.New("invalid page template")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
	ErrInvalidHighlightStyle = errors.New("invalid highlight style")
)
