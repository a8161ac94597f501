// Package search provides full-text article search using Bleve. Only
// published articles are indexed; unpublishing removes the document.
package search

import (
	"github.com/f246632/rijeka-online/internal/domain"
)

// Document is the flattened article representation stored in the Bleve
// index. Category and tag names are denormalized so a single query can
// match them without touching the store.
type Document struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`

	// Body is the plain-text form of the article content.
	Body string `json:"body,omitempty"`

	CategorySlug string   `json:"category_slug,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	TagSlugs     []string `json:"tag_slugs,omitempty"`
	AuthorName   string   `json:"author_name,omitempty"`

	PublishedAt int64 `json:"published_at"` // Unix millis
	ViewCount   int64 `json:"view_count"`
}

// ToMap converts the document to a map with lowercase field names so they
// match the index mapping. Bleve would otherwise index Go field names.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":           d.ID,
		"slug":         d.Slug,
		"title":        d.Title,
		"published_at": d.PublishedAt,
		"view_count":   d.ViewCount,
	}

	if d.Subtitle != "" {
		m["subtitle"] = d.Subtitle
	}
	if d.Excerpt != "" {
		m["excerpt"] = d.Excerpt
	}
	if d.Body != "" {
		m["body"] = d.Body
	}
	if d.CategorySlug != "" {
		m["category_slug"] = d.CategorySlug
	}
	if d.CategoryName != "" {
		m["category_name"] = d.CategoryName
	}
	if len(d.TagSlugs) > 0 {
		m["tag_slugs"] = d.TagSlugs
	}
	if d.AuthorName != "" {
		m["author_name"] = d.AuthorName
	}

	return m
}

// ArticleToDocument converts a published article to its index document.
// Denormalized fields (category, tags, author name) are provided by the
// caller; the search package does not depend on the store.
func ArticleToDocument(a *domain.Article, categorySlug, categoryName, authorName string, tagSlugs []string) *Document {
	doc := &Document{
		ID:           a.ID,
		Slug:         a.Slug,
		Title:        a.Title,
		Subtitle:     a.Subtitle,
		Excerpt:      a.Excerpt,
		Body:         a.ContentText,
		CategorySlug: categorySlug,
		CategoryName: categoryName,
		TagSlugs:     tagSlugs,
		AuthorName:   authorName,
		ViewCount:    a.ViewCount,
	}
	if a.PublishedAt != nil {
		doc.PublishedAt = a.PublishedAt.UnixMilli()
	}
	return doc
}
