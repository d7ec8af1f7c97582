// Package source loads scraped articles from JSON files on disk.
//
// The scraper emits arrays of {title, content, url} objects. The loader
// accepts either a single JSON file or a directory of them.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/unidesk-ai/unidesk/internal/domain/article"
)

// articleRow mirrors the scraper output format.
type articleRow struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Loader reads articles from a configured path.
type Loader struct {
	path string
}

// New creates a loader for the given file or directory.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Load reads all articles. Rows with empty content are skipped rather than
// failing the whole load, since scraped pages are occasionally blank.
func (l *Loader) Load() ([]article.Article, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return nil, fmt.Errorf("stat source path %s: %w", l.path, err)
	}

	files := []string{l.path}
	if info.IsDir() {
		files, err = listJSONFiles(l.path)
		if err != nil {
			return nil, err
		}
	}

	var articles []article.Article
	for _, file := range files {
		rows, err := readRows(file)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			a, err := article.New(row.Title, row.Content, row.URL)
			if err != nil {
				continue
			}
			articles = append(articles, a)
		}
	}

	return articles, nil
}

func listJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func readRows(file string) ([]articleRow, error) {
	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("read source file %s: %w", file, err)
	}

	var rows []articleRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse source file %s: %w", file, err)
	}
	return rows, nil
}
