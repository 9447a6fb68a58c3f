package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
input:
  defaultDir: pages
  exclude: [drafts, node_modules]
  maxDepth: 3
output:
  defaultDir: public
assets:
  basePath: ./theme
  templateSet: docs
markdown:
  unsafeHTML: true
  sanitize: true
  tocPlaceholder: "<!-- toc -->"
  highlightStyle: monokai
build:
  workers: 4
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"input.defaultDir", cfg.Input.DefaultDir, "pages"},
		{"input.exclude", strings.Join(cfg.Input.Exclude, ","), "drafts,node_modules"},
		{"input.maxDepth", cfg.Input.MaxDepth, 3},
		{"output.defaultDir", cfg.Output.DefaultDir, "public"},
		{"assets.basePath", cfg.Assets.BasePath, "./theme"},
		{"assets.templateSet", cfg.Assets.TemplateSet, "docs"},
		{"markdown.unsafeHTML", cfg.Markdown.UnsafeHTML, true},
		{"markdown.sanitize", cfg.Markdown.Sanitize, true},
		{"markdown.tocPlaceholder", cfg.Markdown.TOCPlaceholder, "<!-- toc -->"},
		{"markdown.highlightStyle", cfg.Markdown.HighlightStyle, "monokai"},
		{"build.workers", cfg.Build.Workers, 4},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "unknown field", content: "output:\n  pdf: true\n", wantErr: ErrConfigParse},
		{name: "invalid YAML", content: "input: [\n", wantErr: ErrConfigParse},
		{name: "empty file", content: "", wantErr: ErrConfigParse},
		{name: "negative workers", content: "build:\n  workers: -1\n", wantErr: ErrInvalidValue},
		{name: "exclude with separator", content: "input:\n  exclude: [a/b]\n", wantErr: ErrInvalidValue},
		{
			name:    "template set too long",
			content: "assets:\n  templateSet: " + strings.Repeat("x", MaxNameLength+1) + "\n",
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(writeConfig(t, tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_NotFound(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name lists searched paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("no-such-config-7f3a")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("LoadConfig() error %T is not a *NotFoundError", err)
		}
		if len(nf.Tried) < 2 || nf.Tried[0] != "no-such-config-7f3a.yaml" {
			t.Errorf("Tried = %v", nf.Tried)
		}
		if !strings.Contains(nf.Hint(), "--config") {
			t.Errorf("Hint() = %q", nf.Hint())
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "defaults are valid", cfg: *DefaultConfig()},
		{name: "max workers", cfg: Config{Build: BuildConfig{Workers: MaxWorkers}}},
		{name: "too many workers", cfg: Config{Build: BuildConfig{Workers: MaxWorkers + 1}}, wantErr: ErrInvalidValue},
		{name: "negative depth", cfg: Config{Input: InputConfig{MaxDepth: -1}}, wantErr: ErrInvalidValue},
		{name: "blank placeholder", cfg: Config{Markdown: MarkdownConfig{TOCPlaceholder: "   "}}, wantErr: ErrInvalidValue},
		{name: "empty exclude entry", cfg: Config{Input: InputConfig{Exclude: []string{""}}}, wantErr: ErrInvalidValue},
		{
			name:    "long placeholder",
			cfg:     Config{Markdown: MarkdownConfig{TOCPlaceholder: strings.Repeat("x", MaxPlaceholderLength+1)}},
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
