// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ConfigDirName is the per-user config directory searched for named configs.
const ConfigDirName = "go-mdsite"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := string(filepath.Separator) + ConfigDirName + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForFrontMatter returns hints for malformed front matter.
func ForFrontMatter() string {
	return formatHints([]string{
		"front matter is a flat YAML mapping between two --- lines",
		"quote values containing ':' or '#'",
	})
}

// ForUnresolvableEmbed returns hints for media links without a video id.
func ForUnresolvableEmbed() string {
	return format("link to a single video, e.g. https://www.youtube.com/watch?v=ID or https://vimeo.com/ID")
}

// ForTemplateSetNotFound lists the template sets that can be used instead.
func ForTemplateSetNotFound(available []string) string {
	if len(available) == 0 {
		return format("use --asset-path with a templates/<name>/ directory")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForIncompleteTemplateSet returns hints for template sets missing a file.
func ForIncompleteTemplateSet() string {
	return format("a template set needs both layout.html and navbar.html")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
