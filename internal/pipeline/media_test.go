package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderImage(t *testing.T) {
	t.Parallel()

	const (
		youtubeEmbed = `<iframe width="560" height="315" src="https://www.youtube.com/embed/%s" frameborder="0" allowfullscreen></iframe>`
		vimeoEmbed   = `<iframe src="https://player.vimeo.com/video/%s" width="560" height="315" frameborder="0" allow="autoplay; fullscreen" allowfullscreen></iframe>`
	)
	youtube := func(id string) string { return strings.Replace(youtubeEmbed, "%s", id, 1) }
	vimeo := func(id string) string { return strings.Replace(vimeoEmbed, "%s", id, 1) }

	tests := []struct {
		name  string
		href  string
		title string
		alt   string
		want  string
	}{
		{name: "youtube watch", href: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: youtube("dQw4w9WgXcQ")},
		{name: "youtube watch with other params", href: "https://youtube.com/watch?feature=share&v=abc_123", want: youtube("abc_123")},
		{name: "youtube short link", href: "https://youtu.be/abc-123", want: youtube("abc-123")},
		{name: "youtube embed without scheme", href: "youtube.com/embed/xyz", want: youtube("xyz")},
		{name: "youtube shorts", href: "https://m.youtube.com/shorts/s1", want: youtube("s1")},
		{name: "vimeo", href: "https://vimeo.com/12345", want: vimeo("12345")},
		{name: "vimeo player", href: "https://player.vimeo.com/video/777", want: vimeo("777")},
		{name: "vimeo channel", href: "https://vimeo.com/channels/staffpicks/42", want: vimeo("42")},
		{
			name: "mp4",
			href: "media/clip.MP4",
			want: `<video controls><source src="media/clip.MP4" type="video/mp4">Your browser does not support the video tag.</video>`,
		},
		{
			name: "mp3",
			href: "song.mp3",
			want: `<audio controls><source src="song.mp3" type="audio/mpeg">Your browser does not support the audio element.</audio>`,
		},
		{
			name: "image",
			href: "pic.png",
			alt:  "A pic",
			want: `<img src="pic.png" alt="A pic">`,
		},
		{
			name:  "image with title and escaping",
			href:  "a&b.png",
			title: `say "hi"`,
			alt:   "<alt>",
			want:  `<img src="a&amp;b.png" alt="&lt;alt&gt;" title="say &#34;hi&#34;">`,
		},
		{
			name: "script url is blanked",
			href: "javascript:alert(1)",
			alt:  "x",
			want: `<img src="" alt="x">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RenderImage(tt.href, tt.title, tt.alt)
			if err != nil {
				t.Fatalf("RenderImage(%q) error = %v", tt.href, err)
			}
			if got != tt.want {
				t.Errorf("RenderImage(%q)\n got: %s\nwant: %s", tt.href, got, tt.want)
			}
		})
	}
}

func TestRenderImage_Unresolvable(t *testing.T) {
	t.Parallel()

	hrefs := []string{
		"https://www.youtube.com/watch?list=PL123",
		"https://youtu.be/",
		"https://vimeo.com/about",
	}

	for _, href := range hrefs {
		got, err := RenderImage(href, "", "")
		if !errors.Is(err, ErrUnresolvableEmbed) {
			t.Errorf("RenderImage(%q) error = %v, want ErrUnresolvableEmbed", href, err)
		}
		if got != "" {
			t.Errorf("RenderImage(%q) = %q, want empty fragment on error", href, got)
		}
	}
}

func TestRenderImage_Mp4SingleSource(t *testing.T) {
	t.Parallel()

	got, err := RenderImage("intro.mp4", "", "")
	if err != nil {
		t.Fatalf("RenderImage() error = %v", err)
	}
	if n := strings.Count(got, "<source"); n != 1 {
		t.Errorf("got %d <source> elements, want 1: %s", n, got)
	}
	if !strings.Contains(got, `src="intro.mp4"`) {
		t.Errorf("source src missing: %s", got)
	}
}
