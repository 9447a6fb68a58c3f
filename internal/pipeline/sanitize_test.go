package pipeline

import (
	"strings"
	"testing"
)

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []string
		wantNot []string
	}{
		{
			name:    "script removed",
			input:   `<p>ok</p><script>alert(1)</script>`,
			want:    []string{"<p>ok</p>"},
			wantNot: []string{"<script", "alert(1)"},
		},
		{
			name:    "event handler removed",
			input:   `<p onclick="steal()">x</p>`,
			want:    []string{"<p>x</p>"},
			wantNot: []string{"onclick"},
		},
		{
			name:  "heading anchors kept",
			input: RenderHeading("Intro", 2),
			want:  []string{`id="intro"`, `href="#intro"`, "Intro</h2>"},
		},
		{
			name:  "highlight classes kept",
			input: `<pre><code class="language-go"><span class="kd">func</span></code></pre>`,
			want:  []string{`class="language-go"`, `<span class="kd">`},
		},
		{
			name:  "youtube player kept",
			input: `<iframe width="560" height="315" src="https://www.youtube.com/embed/abc123" frameborder="0" allowfullscreen></iframe>`,
			want:  []string{"<iframe", `src="https://www.youtube.com/embed/abc123"`},
		},
		{
			name:    "foreign iframe source dropped",
			input:   `<iframe src="https://evil.example/x"></iframe>`,
			wantNot: []string{"evil.example"},
		},
		{
			name:  "native video kept",
			input: `<video controls><source src="clip.mp4" type="video/mp4">fallback</video>`,
			want:  []string{"<video", `<source src="clip.mp4" type="video/mp4">`},
		},
	}

	s := NewSanitizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Sanitize(tt.input)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Sanitize() missing %q\n got: %s", w, got)
				}
			}
			for _, w := range tt.wantNot {
				if strings.Contains(got, w) {
					t.Errorf("Sanitize() unexpectedly contains %q\n got: %s", w, got)
				}
			}
		})
	}
}
