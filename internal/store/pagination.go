package store

// ListParams contains offset/limit pagination request parameters.
type ListParams struct {
	Offset int // Number of items to skip (defaults to 0)
	Limit  int // Items per page (defaults to 20 with a maximum of 100)
}

// Page contains one page of results plus the total count of the result
// set before pagination was applied.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DefaultListParams returns sensible defaults.
func DefaultListParams() ListParams {
	return ListParams{Offset: 0, Limit: 20}
}

// Normalize checks and corrects pagination parameters in place.
func (p *ListParams) Normalize() {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// HasMore reports whether more items exist past this page.
func (pg *Page[T]) HasMore() bool {
	return pg.Offset+len(pg.Items) < pg.Total
}
