package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Embed sources allowed through the sanitizer.
var embedSource = regexp.MustCompile(`^https://(?:www\.youtube\.com/embed/|player\.vimeo\.com/video/)[A-Za-z0-9_-]+$`)

// Sanitizer strips untrusted markup from rendered fragments while keeping
// everything the pipeline itself emits: heading anchors, highlight classes
// and media players.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer based on bluemonday's UGC policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("id").Globally()
	p.AllowAttrs("class").Globally()

	p.AllowElements("video", "audio", "source")
	p.AllowAttrs("controls").OnElements("video", "audio")
	p.AllowAttrs("src", "type").OnElements("source")

	p.AllowAttrs("src").Matching(embedSource).OnElements("iframe")
	p.AllowAttrs("width", "height").Matching(bluemonday.Integer).OnElements("iframe")
	p.AllowAttrs("frameborder", "allow", "allowfullscreen").OnElements("iframe")

	return &Sanitizer{policy: p}
}

// Sanitize returns fragment with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(fragment string) string {
	return s.policy.Sanitize(fragment)
}
