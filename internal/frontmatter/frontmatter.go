// Package frontmatter loads markdown documents and splits off their YAML
// front matter.
package frontmatter

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	fm "github.com/adrg/frontmatter"

	"github.com/alnah/go-mdsite/internal/dateutil"
	"github.com/alnah/go-mdsite/internal/yamlutil"
)

// ErrFrontMatter indicates a front matter block that is not a flat YAML mapping.
var ErrFrontMatter = errors.New("invalid front matter")

// DateKey is the metadata key whose "auto" values resolve to the build date.
const DateKey = "date"

// delimiter opens and closes a front matter block.
const delimiter = "---"

// yamlFormat is the only front matter format recognized.
var yamlFormat = fm.NewFormat(delimiter, delimiter, yamlutil.UnmarshalOptional)

// Document is one markdown source with its metadata separated from its body.
type Document struct {
	SourcePath string
	Metadata   map[string]string
	Body       string
}

// Keys returns the metadata keys in sorted order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.Metadata))
	for k := range d.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Loader reads documents. The zero value resolves dates against time.Now.
type Loader struct {
	Now func() time.Time
}

// Parse splits content read from path.
func Parse(path string, content []byte) (*Document, error) {
	return (&Loader{}).Parse(path, content)
}

// Load reads and splits the file at path.
func Load(path string) (*Document, error) {
	return (&Loader{}).Load(path)
}

// Load reads and splits the file at path.
func (l *Loader) Load(path string) (*Document, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from discovery under the source root
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return l.Parse(path, content)
}

// Parse splits content into metadata and body.
// A missing or empty front matter block yields empty metadata.
// Metadata values are flattened to strings; nested mappings are rejected.
func (l *Loader) Parse(path string, content []byte) (*Document, error) {
	text := normalizeLineEndings(string(content))
	if unclosedBlock(text) {
		return nil, fmt.Errorf("%w in %s: no closing %q line", ErrFrontMatter, path, delimiter)
	}

	var raw map[string]any
	rest, err := fm.Parse(strings.NewReader(text), &raw, yamlFormat)
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %w", ErrFrontMatter, path, err)
	}

	meta := make(map[string]string, len(raw))
	for key, value := range raw {
		s, err := flatten(value)
		if err != nil {
			return nil, fmt.Errorf("%w in %s: key %q: %w", ErrFrontMatter, path, key, err)
		}
		meta[key] = s
	}

	if date, ok := meta[DateKey]; ok && dateutil.IsAuto(date) {
		resolved, err := dateutil.ResolveDate(date, l.now())
		if err != nil {
			return nil, fmt.Errorf("%w in %s: key %q: %w", ErrFrontMatter, path, DateKey, err)
		}
		meta[DateKey] = resolved
	}

	return &Document{
		SourcePath: path,
		Metadata:   meta,
		Body:       strings.TrimSpace(string(rest)),
	}, nil
}

// unclosedBlock reports whether text opens a front matter block that never closes.
func unclosedBlock(text string) bool {
	first, rest, _ := strings.Cut(text, "\n")
	if strings.TrimRight(first, " \t") != delimiter {
		return false
	}
	for _, line := range strings.Split(rest, "\n") {
		if strings.TrimRight(line, " \t") == delimiter {
			return false
		}
	}
	return true
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

var errNested = errors.New("nested mappings are not supported")

// flatten renders a decoded YAML value as text.
// Sequences are joined with commas and null becomes the empty string.
func flatten(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		if v.Equal(v.Truncate(24 * time.Hour)) {
			return v.Format(time.DateOnly), nil
		}
		return v.Format(time.RFC3339), nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			s, err := flatten(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	case map[string]any, map[any]any:
		return "", errNested
	default:
		return fmt.Sprint(v), nil
	}
}

func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
