package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/f246632/rijeka-online/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchArticles",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search articles",
		Description: "Full-text search over published articles",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// SearchInput contains search parameters.
type SearchInput struct {
	Query        string `query:"q" doc:"Search query"`
	CategorySlug string `query:"category" doc:"Category slug filter"`
	TagSlug      string `query:"tag" doc:"Tag slug filter"`
	Offset       int    `query:"offset" doc:"Hits to skip"`
	Limit        int    `query:"limit" doc:"Page size"`
	SortBy       string `query:"sort" doc:"relevance (default), recent or popular"`
	Highlight    bool   `query:"highlight" doc:"Include highlighted fragments"`
}

// SearchOutput wraps search results for Huma.
type SearchOutput struct {
	Body search.Result
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := s.services.Search.Search(ctx, search.Params{
		Query:        input.Query,
		CategorySlug: input.CategorySlug,
		TagSlug:      input.TagSlug,
		Offset:       input.Offset,
		Limit:        input.Limit,
		SortBy:       input.SortBy,
		Highlight:    input.Highlight,
	})
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}
