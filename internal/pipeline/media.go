package pipeline

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrUnresolvableEmbed indicates a link that looks like a video provider URL
// but carries no video identifier.
var ErrUnresolvableEmbed = errors.New("unresolvable media embed")

// Embed player geometry.
const (
	embedWidth  = "560"
	embedHeight = "315"
)

const (
	videoFallback = "Your browser does not support the video tag."
	audioFallback = "Your browser does not support the audio element."
)

// Provider patterns. Each provider has a detection pattern (is this the
// provider's host?) and an extraction pattern (where is the id?).
var (
	youtubeHost = regexp.MustCompile(`(?i)^(?:https?:)?(?://)?(?:www\.|m\.)?(?:youtube\.com|youtu\.be)/`)
	youtubeID   = regexp.MustCompile(`(?i)^(?:https?:)?(?://)?(?:www\.|m\.)?(?:youtube\.com/(?:watch\?(?:[^#]*&)?v=|embed/|shorts/|v/)|youtu\.be/)([A-Za-z0-9_-]+)`)

	vimeoHost = regexp.MustCompile(`(?i)^(?:https?:)?(?://)?(?:www\.|player\.)?vimeo\.com/`)
	vimeoID   = regexp.MustCompile(`(?i)^(?:https?:)?(?://)?(?:www\.|player\.)?vimeo\.com/(?:video/|channels/[\w-]+/|groups/[\w-]+/videos/)?(\d+)`)
)

// RenderImage renders the target of markdown image syntax. YouTube and Vimeo
// links become iframe players, .mp4 and .mp3 links become native players and
// anything else is an <img>. A provider link without a video id returns
// ErrUnresolvableEmbed.
func RenderImage(href, title, alt string) (string, error) {
	return renderMedia(MediaLink{Href: href, Title: title, Alt: alt}, false)
}

func renderMedia(link MediaLink, unsafe bool) (string, error) {
	href := strings.TrimSpace(link.Href)

	if youtubeHost.MatchString(href) {
		id, err := extractID(youtubeID, href)
		if err != nil {
			return "", err
		}
		return `<iframe width="` + embedWidth + `" height="` + embedHeight +
			`" src="https://www.youtube.com/embed/` + html.EscapeString(id) +
			`" frameborder="0" allowfullscreen></iframe>`, nil
	}

	if vimeoHost.MatchString(href) {
		id, err := extractID(vimeoID, href)
		if err != nil {
			return "", err
		}
		return `<iframe src="https://player.vimeo.com/video/` + html.EscapeString(id) +
			`" width="` + embedWidth + `" height="` + embedHeight +
			`" frameborder="0" allow="autoplay; fullscreen" allowfullscreen></iframe>`, nil
	}

	src := safeURL(href, unsafe)
	lower := strings.ToLower(href)

	switch {
	case strings.HasSuffix(lower, ".mp4"):
		return `<video controls><source src="` + src + `" type="video/mp4">` +
			videoFallback + `</video>`, nil
	case strings.HasSuffix(lower, ".mp3"):
		return `<audio controls><source src="` + src + `" type="audio/mpeg">` +
			audioFallback + `</audio>`, nil
	}

	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(src)
	b.WriteString(`" alt="`)
	b.WriteString(html.EscapeString(link.Alt))
	b.WriteString(`"`)
	if link.Title != "" {
		b.WriteString(` title="`)
		b.WriteString(html.EscapeString(link.Title))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	return b.String(), nil
}

// extractID returns the first capture of re in href.
func extractID(re *regexp.Regexp, href string) (string, error) {
	m := re.FindStringSubmatch(href)
	if len(m) < 2 || m[1] == "" {
		return "", fmt.Errorf("%w: %q", ErrUnresolvableEmbed, href)
	}
	return m[1], nil
}

// safeURL escapes href for an attribute and blanks script-capable URLs.
func safeURL(href string, unsafe bool) string {
	if !unsafe && gmhtml.IsDangerousURL([]byte(href)) {
		return ""
	}
	return html.EscapeString(href)
}
