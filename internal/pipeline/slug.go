package pipeline

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify derives a heading anchor from heading text.
// The text is lowercased and every run of whitespace becomes a single hyphen.
// Punctuation and diacritics are kept as-is.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// slugger hands out document-unique anchors in heading order.
// Repeats of a slug get a numeric suffix: intro, intro-1, intro-2.
// A slugger belongs to a single document render and is not safe for concurrent use.
type slugger struct {
	used map[string]int
}

func newSlugger() *slugger {
	return &slugger{used: make(map[string]int)}
}

// unique returns the anchor for the next heading with the given text.
func (s *slugger) unique(text string) string {
	base := Slugify(text)
	n, seen := s.used[base]
	if !seen {
		s.used[base] = 0
		return base
	}

	for {
		n++
		candidate := base + "-" + strconv.Itoa(n)
		if _, taken := s.used[candidate]; !taken {
			s.used[base] = n
			s.used[candidate] = 0
			return candidate
		}
	}
}
