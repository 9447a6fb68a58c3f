package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeAsset creates base/rel with content, including parent directories.
func writeAsset(t *testing.T, base, rel, content string) {
	t.Helper()
	path := filepath.Join(base, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(""); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "file.txt", "x")

		_, err := NewFilesystemLoader(filepath.Join(dir, "file.txt"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "templates/docs/layout.html", "<main>{{ content }}</main>")
	writeAsset(t, dir, "templates/docs/navbar.html", "<a>{{ home }}</a>")
	writeAsset(t, dir, "templates/half/layout.html", "{{ content }}")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	t.Run("complete set", func(t *testing.T) {
		t.Parallel()

		ts, err := loader.LoadTemplateSet("docs")
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.Layout != "<main>{{ content }}</main>" || ts.NavBar != "<a>{{ home }}</a>" {
			t.Errorf("LoadTemplateSet() = %+v", ts)
		}
	})

	t.Run("missing navbar", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadTemplateSet("half"); !errors.Is(err, ErrIncompleteTemplateSet) {
			t.Errorf("LoadTemplateSet() error = %v, want ErrIncompleteTemplateSet", err)
		}
	})

	t.Run("missing set", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadTemplateSet("nope"); !errors.Is(err, ErrTemplateSetNotFound) {
			t.Errorf("LoadTemplateSet() error = %v, want ErrTemplateSetNotFound", err)
		}
	})
}

func TestFilesystemLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles/site.css", "body{}")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	css, err := loader.LoadStyle("site")
	if err != nil || css != "body{}" {
		t.Errorf("LoadStyle(site) = %q, %v", css, err)
	}
	if _, err := loader.LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(missing) error = %v, want ErrStyleNotFound", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	outside := t.TempDir()
	writeAsset(t, outside, "secret.css", "stolen")

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(outside, "secret.css"), filepath.Join(base, "styles", "evil.css")); err != nil {
		t.Fatalf("creating symlink: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadStyle("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle(evil) error = %v, want ErrPathTraversal", err)
	}
}

func TestLoadTemplateSetDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "full/layout.html", "<main>{{ content }}</main>")
	writeAsset(t, dir, "full/navbar.html", "<nav></nav>")
	writeAsset(t, dir, "half/navbar.html", "<nav></nav>")
	writeAsset(t, dir, "plain.txt", "x")

	tests := []struct {
		name    string
		dir     string
		wantErr error
	}{
		{"complete set", filepath.Join(dir, "full"), nil},
		{"missing layout", filepath.Join(dir, "half"), ErrIncompleteTemplateSet},
		{"missing directory", filepath.Join(dir, "none"), ErrTemplateSetNotFound},
		{"regular file", filepath.Join(dir, "plain.txt"), ErrInvalidBasePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts, err := LoadTemplateSetDir(tt.dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadTemplateSetDir() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplateSetDir() unexpected error: %v", err)
			}
			if ts.Layout != "<main>{{ content }}</main>" || ts.NavBar != "<nav></nav>" {
				t.Errorf("LoadTemplateSetDir() = %+v", ts)
			}
		})
	}
}
