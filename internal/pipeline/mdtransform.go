package pipeline

import (
	"context"
	"regexp"
)

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor prepares markdown for conversion: it normalizes line
// endings and expands table of contents placeholders.
type CommonMarkPreprocessor struct {
	TOC *TOCExpander // nil disables TOC expansion
}

// NewCommonMarkPreprocessor creates a preprocessor whose TOC expander finds
// headings with the converter's own parser.
func NewCommonMarkPreprocessor(conv *GoldmarkConverter, placeholder string) *CommonMarkPreprocessor {
	return &CommonMarkPreprocessor{
		TOC: NewTOCExpander(conv.Markdown().Parser(), placeholder),
	}
}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	if p.TOC != nil {
		content = p.TOC.Expand(content)
	}
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*CommonMarkPreprocessor)(nil)
