// Package pipeline implements the Markdown-to-HTML conversion pipeline.
//
// Stages, in the order a document goes through them:
//   - Markdown preprocessing (line ending normalization, [TOC] expansion)
//   - Markdown to HTML conversion via goldmark, with headings, code blocks
//     and images routed to a Renderer
//   - Post-processing: markdown link rewriting, optional sanitizing and
//     highlight CSS injection
//
// Renderers are passed to the converter at construction. Nothing in this
// package holds mutable package-level state, so converters can be shared by
// concurrent workers.
package pipeline
