package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testEnv is an Environment with captured output and a fixed process environment.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(vars map[string]string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) },
			Stdout: stdout,
			Stderr: stderr,
			Getenv: func(key string) string { return vars[key] },
			Environ: func() []string {
				var kv []string
				for k, v := range vars {
					kv = append(kv, k+"="+v)
				}
				return kv
			},
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// writeFiles creates files (relative path -> content) under root.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
}

func assertContains(t *testing.T, label, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("%s missing %q\n got: %s", label, want, got)
		}
	}
}
