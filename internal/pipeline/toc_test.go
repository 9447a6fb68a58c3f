package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func TestExpandTOC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "nested by level",
			body: "[TOC]\n\n# A\n\n## B\n\n### C\n\n## D\n",
			want: "\n\n- [A](#a)\n  - [B](#b)\n    - [C](#c)\n  - [D](#d)\n\n" +
				"\n\n# A\n\n## B\n\n### C\n\n## D\n",
		},
		{
			name: "level gap nests one step",
			body: "# A\n\n### C\n\n[TOC]",
			want: "# A\n\n### C\n\n\n\n- [A](#a)\n  - [C](#c)\n\n",
		},
		{
			name: "headings inside fences are not listed",
			body: "[TOC]\n\n```\n# not a heading\n```\n\n# Real\n",
			want: "\n\n- [Real](#real)\n\n\n\n```\n# not a heading\n```\n\n# Real\n",
		},
		{
			name: "repeated headings get distinct anchors",
			body: "[TOC]\n\n# Intro\n\n# Intro\n",
			want: "\n\n- [Intro](#intro)\n- [Intro](#intro-1)\n\n\n\n# Intro\n\n# Intro\n",
		},
		{
			name: "setext headings",
			body: "[TOC]\n\nTitle\n=====\n",
			want: "\n\n- [Title](#title)\n\n\n\nTitle\n=====\n",
		},
		{
			name: "brackets in heading text are escaped",
			body: "[TOC]\n\n# a [b] c\n",
			want: "\n\n- [a \\[b\\] c](#a-[b]-c)\n\n\n\n# a [b] c\n",
		},
		{
			name: "no headings removes placeholder",
			body: "before [TOC] after",
			want: "before  after",
		},
		{
			name: "escaped backticks do not open code",
			body: "\\`[TOC]\\`\n\n# A\n",
			want: "\\`\n\n- [A](#a)\n\n\\`\n\n# A\n",
		},
		{
			name: "only the placeholder outside nested code expands",
			body: "[TOC]\n\n# A\n\n- x\n\n      [TOC]\n",
			want: "\n\n- [A](#a)\n\n\n\n# A\n\n- x\n\n      [TOC]\n",
		},
		{
			name: "every placeholder gets a list",
			body: "[TOC]\n\n# A\n\n[TOC]",
			want: "\n\n- [A](#a)\n\n\n\n# A\n\n\n\n- [A](#a)\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExpandTOC(tt.body); got != tt.want {
				t.Errorf("ExpandTOC(%q)\n got: %q\nwant: %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestExpandTOC_PlaceholderInCodeIsNoOp(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"```\n[TOC]\n```\n\n# A\n",
		"~~~md\n[TOC]\n~~~\n",
		"Write `[TOC]` to get a table.\n\n# A\n",
		"```\n[TOC]\n", // unterminated fence
		"# A\n\n1. Step one:\n\n    ```md\n    Put this line:\n\n    [TOC]\n    ```\n",
		"# A\n\n    [TOC]\n",
		"# A\n\n> ```\n> [TOC]\n> ```\n",
		"# A\n\n- item\n\n      [TOC]\n",
	}

	for _, body := range bodies {
		if got := ExpandTOC(body); got != body {
			t.Errorf("ExpandTOC(%q) = %q, want unchanged", body, got)
		}
	}
}

func TestTOCExpander_CustomPlaceholder(t *testing.T) {
	t.Parallel()

	p := goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()
	e := NewTOCExpander(p, "<!-- toc -->")

	if e.Placeholder() != "<!-- toc -->" {
		t.Errorf("Placeholder() = %q, want %q", e.Placeholder(), "<!-- toc -->")
	}

	got := e.Expand("<!-- toc -->\n\n# Only\n\n[TOC]")
	want := "\n\n- [Only](#only)\n\n\n\n# Only\n\n[TOC]"
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestTOCExpander_DefaultPlaceholder(t *testing.T) {
	t.Parallel()

	p := goldmark.New().Parser()
	if got := NewTOCExpander(p, "").Placeholder(); got != DefaultTOCPlaceholder {
		t.Errorf("Placeholder() = %q, want %q", got, DefaultTOCPlaceholder)
	}
}

func TestTOCExpander_Headings(t *testing.T) {
	t.Parallel()

	body := "# One\n\n> ## Quoted\n\n- ### Listed\n\n```\n# Fenced\n```\n"
	got := defaultTOCExpander.Headings(body)

	want := []Heading{
		{Level: 1, Text: "One", Anchor: "one"},
		{Level: 2, Text: "Quoted", Anchor: "quoted"},
		{Level: 3, Text: "Listed", Anchor: "listed"},
	}
	if len(got) != len(want) {
		t.Fatalf("Headings() returned %d headings, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Headings()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRenderTOCMarkdown_Empty(t *testing.T) {
	t.Parallel()

	if got := renderTOCMarkdown(nil); got != "" {
		t.Errorf("renderTOCMarkdown(nil) = %q, want empty", got)
	}
}

func TestExpandTOC_LinksMatchHeadingIDs(t *testing.T) {
	t.Parallel()

	body := ExpandTOC("[TOC]\n\n# Getting Started\n\n## Install it\n\n# Getting Started\n")
	html, err := NewGoldmarkConverter().ToHTML(context.Background(), body)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	links := map[string]string{
		"getting-started":   "Getting Started",
		"install-it":        "Install it",
		"getting-started-1": "Getting Started",
	}
	for anchor, text := range links {
		if link := `<a href="#` + anchor + `">` + text + `</a>`; !strings.Contains(html, link) {
			t.Errorf("TOC link %q missing in %s", link, html)
		}
		if !strings.Contains(html, `id="`+anchor+`"`) {
			t.Errorf("heading id %q missing in %s", anchor, html)
		}
	}
}

func TestExpandTOC_LinksMatchEscapedHeadingIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		anchor string
	}{
		{name: "non-ascii", body: "[TOC]\n\n## Café Über\n", anchor: "café-über"},
		{name: "backticks and emphasis", body: "[TOC]\n\n# Hello `x` **b**\n", anchor: "hello-`x`-**b**"},
		{name: "parentheses", body: "[TOC]\n\n# f(x) <y>\n", anchor: "f(x)-&lt;y&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			html, err := NewGoldmarkConverter().ToHTML(context.Background(), ExpandTOC(tt.body))
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			if !strings.Contains(html, `id="`+tt.anchor+`"`) {
				t.Fatalf("heading id %q missing in %s", tt.anchor, html)
			}
			// One for the TOC entry, one for the permalink.
			if got := strings.Count(html, `href="#`+tt.anchor+`"`); got != 2 {
				t.Errorf("links to %q = %d, want 2 in %s", tt.anchor, got, html)
			}
		})
	}
}

func TestToHTML_FragmentLinkWithoutHeadingIsURLEscaped(t *testing.T) {
	t.Parallel()

	html, err := NewGoldmarkConverter().ToHTML(context.Background(), "[x](#café)\n")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if want := `href="#caf%C3%A9"`; !strings.Contains(html, want) {
		t.Errorf("ToHTML() = %s, want %s", html, want)
	}
}
