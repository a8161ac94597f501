package domain

// Tag is a free-form label shared across articles. The slug is the source of
// truth for identity: creating a tag whose slug already exists returns the
// existing tag instead of erroring.
type Tag struct {
	Timestamps
	Name string `json:"name"` // Display name: "Gradska uprava"
	Slug string `json:"slug"` // Canonical form: lowercase, hyphenated
}

// ArticleTag represents the many-to-many relationship between articles and tags.
type ArticleTag struct {
	ArticleID string `json:"article_id"`
	TagID     string `json:"tag_id"`
}
