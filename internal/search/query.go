package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query string // User's search query

	// Filters
	CategorySlug string
	TagSlug      string

	// Pagination
	Limit  int
	Offset int

	// SortBy is "relevance" (default), "recent" or "popular".
	SortBy string

	Highlight bool
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:     20,
		Offset:    0,
		SortBy:    "relevance",
		Highlight: true,
	}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single search result.
type Hit struct {
	ID           string            `json:"id"`
	Score        float64           `json:"score"`
	Slug         string            `json:"slug"`
	Title        string            `json:"title"`
	Subtitle     string            `json:"subtitle,omitempty"`
	Excerpt      string            `json:"excerpt,omitempty"`
	CategorySlug string            `json:"category_slug,omitempty"`
	AuthorName   string            `json:"author_name,omitempty"`
	PublishedAt  int64             `json:"published_at,omitempty"`
	Highlights   map[string]string `json:"highlights,omitempty"`
}

// Search executes a search query against the article index.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = 20
	}

	searchQuery := buildSearchQuery(params)
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
		searchRequest.Highlight.AddField("excerpt")
		searchRequest.Highlight.AddField("body")
	}

	searchRequest.Fields = []string{
		"id", "slug", "title", "subtitle", "excerpt",
		"category_slug", "author_name", "published_at",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if v, ok := hit.Fields["slug"].(string); ok {
			h.Slug = v
		}
		if v, ok := hit.Fields["title"].(string); ok {
			h.Title = v
		}
		if v, ok := hit.Fields["subtitle"].(string); ok {
			h.Subtitle = v
		}
		if v, ok := hit.Fields["excerpt"].(string); ok {
			h.Excerpt = v
		}
		if v, ok := hit.Fields["category_slug"].(string); ok {
			h.CategorySlug = v
		}
		if v, ok := hit.Fields["author_name"].(string); ok {
			h.AuthorName = v
		}
		if v, ok := hit.Fields["published_at"].(float64); ok {
			h.PublishedAt = int64(v)
		}

		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params. The text query
// matches title (boosted), excerpt and body, with a fuzzy title match for
// typo tolerance and a prefix match for partial words.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if params.Query != "" {
		textQueries := []query.Query{}

		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleMatch)

		excerptMatch := bleve.NewMatchQuery(params.Query)
		excerptMatch.SetField("excerpt")
		excerptMatch.SetBoost(1.5)
		textQueries = append(textQueries, excerptMatch)

		bodyMatch := bleve.NewMatchQuery(params.Query)
		bodyMatch.SetField("body")
		textQueries = append(textQueries, bodyMatch)

		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("title")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.CategorySlug != "" {
		cq := bleve.NewTermQuery(params.CategorySlug)
		cq.SetField("category_slug")
		queries = append(queries, cq)
	}

	if params.TagSlug != "" {
		tq := bleve.NewTermQuery(params.TagSlug)
		tq.SetField("tag_slugs")
		queries = append(queries, tq)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params Params) {
	switch params.SortBy {
	case "recent":
		req.SortBy([]string{"-published_at"})
	case "popular":
		req.SortBy([]string{"-view_count", "-published_at"})
	default:
		req.SortBy([]string{"-_score"})
	}
}
