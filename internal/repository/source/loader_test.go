package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "articles.json", `[
		{"title": "Tuyển sinh 2025", "content": "Nội dung bài viết.", "url": "https://example.edu/vn/tuyen-sinh/1"},
		{"title": "Bỏ qua", "content": "", "url": "https://example.edu/vn/tin-tuc/2"}
	]`)

	articles, err := New(path).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article (blank content skipped), got %d", len(articles))
	}
	if articles[0].Title() != "Tuyển sinh 2025" {
		t.Errorf("unexpected title %q", articles[0].Title())
	}
	if articles[0].Category() != "Tuyển sinh" {
		t.Errorf("unexpected category %q", articles[0].Category())
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[{"title": "A", "content": "một", "url": ""}]`)
	writeFile(t, dir, "b.json", `[{"title": "B", "content": "hai", "url": ""}]`)
	writeFile(t, dir, "notes.txt", "ignored")

	articles, err := New(dir).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
}

func TestLoad_MissingPath(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing.json")).Load(); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", `{not json`)

	if _, err := New(path).Load(); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
