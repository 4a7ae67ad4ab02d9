package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"retab/internal/config"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "pyproject.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	s := config.Default()
	if s.LineLength != 79 || s.CommentWidth != 72 || s.Indent != 4 || s.QuoteStyle != "auto" {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.Unit() != "    " {
		t.Errorf("Unit() = %q", s.Unit())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[tool.retab]
line-length = 100
indent = 2
quote-style = "double"
`)
	s, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.LineLength != 100 || s.Indent != 2 || s.QuoteStyle != "double" {
		t.Errorf("overrides not applied: %+v", s)
	}
	// отсутствующий ключ остаётся дефолтным
	if s.CommentWidth != 72 {
		t.Errorf("CommentWidth = %d, want default 72", s.CommentWidth)
	}
	if s.Path != path {
		t.Errorf("Path = %q, want %q", s.Path, path)
	}
}

func TestLoadWithoutSection(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[tool.black]\nline-length = 120\n")
	s, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.LineLength != 79 {
		t.Errorf("foreign tool section leaked: %+v", s)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"[tool.retab]\nline-length = 5\n",
		"[tool.retab]\ncomment-width = 200\n",
		"[tool.retab]\nindent = 0\n",
		"[tool.retab]\nquote-style = \"fancy\"\n",
	}
	for _, body := range cases {
		dir := t.TempDir()
		path := writeManifest(t, dir, body)
		if _, err := config.Load(path); err == nil {
			t.Errorf("Load(%q) accepted invalid settings", body)
		}
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[tool.retab]\nindent = 8\n")
	nested := filepath.Join(root, "pkg", "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	s, err := config.Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if s.Indent != 8 {
		t.Errorf("Indent = %d, want 8 from parent manifest", s.Indent)
	}
}

func TestDiscoverFileStart(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[tool.retab]\nline-length = 90\n")
	file := filepath.Join(root, "main.py")
	if err := os.WriteFile(file, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := config.Discover(file)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if s.LineLength != 90 {
		t.Errorf("LineLength = %d, want 90", s.LineLength)
	}
}
