// Package article models scraped source documents and their chunking.
package article

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Article is a scraped source document (immutable value object).
type Article struct {
	title    string
	content  string
	url      string
	category string
}

// New validates and creates an Article. Category is derived from the URL path.
func New(title, content, url string) (Article, error) {
	if strings.TrimSpace(content) == "" {
		return Article{}, fmt.Errorf("article content is required")
	}
	return Article{
		title:    strings.TrimSpace(title),
		content:  strings.TrimSpace(content),
		url:      url,
		category: CategoryFromURL(url),
	}, nil
}

// Title returns the article title.
func (a Article) Title() string { return a.title }

// Content returns the article body.
func (a Article) Content() string { return a.content }

// URL returns the article source URL.
func (a Article) URL() string { return a.url }

// Category returns the category derived from the URL.
func (a Article) Category() string { return a.category }

// Document returns the embeddable text: title header plus body.
func (a Article) Document() string {
	if a.title == "" {
		return a.content
	}
	return "Tiêu đề: " + a.title + "\n\n" + a.content
}

// CategoryFromURL maps a source URL path segment to a display category.
func CategoryFromURL(url string) string {
	switch {
	case strings.Contains(url, "/tin-tuc/"):
		return "Tin tức"
	case strings.Contains(url, "/su-kien/"):
		return "Sự kiện"
	case strings.Contains(url, "/tuyen-sinh/"):
		return "Tuyển sinh"
	case strings.Contains(url, "/nganh-dao-tao/"):
		return "Ngành đào tạo"
	default:
		return "Khác"
	}
}

// Chunk is one embeddable slice of an article, carrying the source fields
// needed for citations.
type Chunk struct {
	ID       string
	Text     string
	Title    string
	URL      string
	Category string
}

// ChunksFrom pairs split texts with their source article and assigns IDs.
func ChunksFrom(a Article, texts []string) []Chunk {
	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{
			ID:       uuid.NewString(),
			Text:     text,
			Title:    a.Title(),
			URL:      a.URL(),
			Category: a.Category(),
		}
	}
	return chunks
}
