package domain

// Category classifies articles. Every article belongs to exactly one category.
// Categories are flat (no hierarchy) and ordered manually for presentation.
type Category struct {
	Timestamps
	Name        string `json:"name"`                  // Display name: "Ekonomija"
	Slug        string `json:"slug"`                  // URL-safe key: "ekonomija"
	Description string `json:"description,omitempty"` // Optional description
	Color       string `json:"color"`                 // Hex color for UI badges
	Icon        string `json:"icon,omitempty"`        // Icon identifier
	DisplayOrder int   `json:"display_order"`         // Manual presentation order

	// ArticleCount is denormalized for listings; not persisted as a column.
	ArticleCount int `json:"article_count,omitempty"`
}
