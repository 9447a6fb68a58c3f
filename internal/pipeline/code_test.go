package pipeline

import (
	"strings"
	"testing"
)

func TestRenderCode(t *testing.T) {
	t.Parallel()

	t.Run("known language is highlighted", func(t *testing.T) {
		t.Parallel()

		got := RenderCode("print(1)\n", "python")
		if !strings.HasPrefix(got, `<pre><code class="language-python">`) {
			t.Errorf("RenderCode() = %q, want language-python prefix", got)
		}
		if !strings.HasSuffix(got, "</code></pre>") {
			t.Errorf("RenderCode() = %q, want </code></pre> suffix", got)
		}
		if !strings.Contains(got, "<span") {
			t.Errorf("RenderCode() = %q, want highlighted spans", got)
		}
	})

	tests := []struct {
		name     string
		code     string
		language string
		want     string
	}{
		{name: "no language", code: "a < b\n", language: "", want: "<pre><code>a &lt; b\n</code></pre>"},
		{name: "unknown language", code: "x & y", language: "nosuchlang", want: "<pre><code>x &amp; y</code></pre>"},
		{name: "blank language", code: `"q"`, language: "  ", want: "<pre><code>&quot;q&quot;</code></pre>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RenderCode(tt.code, tt.language); got != tt.want {
				t.Errorf("RenderCode(%q, %q) = %q, want %q", tt.code, tt.language, got, tt.want)
			}
		})
	}
}

func TestSupportsLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		language string
		want     bool
	}{
		{language: "python", want: true},
		{language: "go", want: true},
		{language: "", want: false},
		{language: "nosuchlang", want: false},
	}

	for _, tt := range tests {
		if got := SupportsLanguage(tt.language); got != tt.want {
			t.Errorf("SupportsLanguage(%q) = %v, want %v", tt.language, got, tt.want)
		}
	}
}

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	css, err := HighlightCSS("monokai")
	if err != nil {
		t.Fatalf("HighlightCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("HighlightCSS() missing .chroma rules: %q", css)
	}
}

func TestNewCodeHighlighter_UnknownStyle(t *testing.T) {
	t.Parallel()

	h := NewCodeHighlighter("no-such-style")
	if _, err := h.CSS(); err != nil {
		t.Errorf("CSS() with fallback style error = %v", err)
	}
}

func TestHasHighlightStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		style string
		want  bool
	}{
		{"github", true},
		{"monokai", true},
		{"no-such-style", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			t.Parallel()
			if got := HasHighlightStyle(tt.style); got != tt.want {
				t.Errorf("HasHighlightStyle(%q) = %v, want %v", tt.style, got, tt.want)
			}
		})
	}
}
