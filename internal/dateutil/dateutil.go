// Package dateutil resolves "auto" date values in document metadata.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is given without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// autoPrefix introduces a custom format: "auto:DD/MM/YYYY".
const autoPrefix = "auto:"

// dateTokens maps format tokens to Go layout components, longest first.
var dateTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets names common formats usable as "auto:NAME".
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat converts a token format (YYYY, YY, MMMM, MMM, MM, M, DD, D)
// to a Go time layout. Text in brackets is copied literally: "[Week of] D MMM".
// Other characters are kept as they are.
func ParseDateFormat(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	layout.Grow(len(format) + 8)

	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d",
					ErrInvalidDateFormat, len(format)-len(rest))
			}
			layout.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		rest = writeToken(&layout, rest)
	}

	return layout.String(), nil
}

// writeToken writes the layout for the token at the start of s, or its first
// byte when no token matches, and returns the unconsumed remainder.
func writeToken(b *strings.Builder, s string) string {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.layout)
			return s[len(t.token):]
		}
	}
	b.WriteByte(s[0])
	return s[1:]
}

// IsAuto reports whether value asks for the build date.
func IsAuto(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower == "auto" || strings.HasPrefix(lower, autoPrefix)
}

// ResolveDate formats t for "auto" (DefaultDateFormat), "auto:FORMAT" and
// "auto:PRESET" values. The keyword and presets are case-insensitive.
// Any other value is returned unchanged.
func ResolveDate(value string, t time.Time) (string, error) {
	if !IsAuto(value) {
		return value, nil
	}

	format := DefaultDateFormat
	if trimmed := strings.TrimSpace(value); len(trimmed) > len("auto") {
		format = trimmed[len(autoPrefix):] // tokens are case-sensitive
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after %q", ErrInvalidDateFormat, autoPrefix)
		}
		if preset, ok := DatePresets[strings.ToLower(format)]; ok {
			format = preset
		}
	}

	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
