package assets

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "templates/default/layout.html", "custom {{ content }}")
	writeAsset(t, dir, "templates/default/navbar.html", "custom nav")
	writeAsset(t, dir, "templates/broken/layout.html", "{{ content }}")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom template set wins", func(t *testing.T) {
		t.Parallel()

		ts, err := resolver.LoadTemplateSet("default")
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.NavBar != "custom nav" {
			t.Errorf("NavBar = %q, want custom", ts.NavBar)
		}
	})

	t.Run("style falls back to embedded", func(t *testing.T) {
		t.Parallel()

		css, err := resolver.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(css, ".content") {
			t.Error("expected embedded default style")
		}
	})

	t.Run("incomplete custom set does not fall back", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadTemplateSet("broken"); !errors.Is(err, ErrIncompleteTemplateSet) {
			t.Errorf("LoadTemplateSet(broken) error = %v, want ErrIncompleteTemplateSet", err)
		}
	})

	t.Run("unknown everywhere", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadTemplateSet("nowhere"); !errors.Is(err, ErrTemplateSetNotFound) {
			t.Errorf("LoadTemplateSet(nowhere) error = %v, want ErrTemplateSetNotFound", err)
		}
	})
}
