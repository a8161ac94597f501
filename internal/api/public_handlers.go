package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/f246632/rijeka-online/internal/service"
	"github.com/f246632/rijeka-online/internal/store"
)

// Public routes serve the reader-facing site: no authentication, published
// articles only.
func (s *Server) registerPublicRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPublishedArticles",
		Method:      http.MethodGet,
		Path:        "/api/v1/public/articles",
		Summary:     "List published articles",
		Description: "Returns a page of published articles, newest first",
		Tags:        []string{"Public"},
	}, s.handleListPublishedArticles)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPublishedArticle",
		Method:      http.MethodGet,
		Path:        "/api/v1/public/articles/{slug}",
		Summary:     "Get published article",
		Description: "Returns a published article by slug and counts the view",
		Tags:        []string{"Public"},
	}, s.handleGetPublishedArticle)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPublicCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/public/categories",
		Summary:     "List categories",
		Description: "Returns all categories in display order with article counts",
		Tags:        []string{"Public"},
	}, s.handleListPublicCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPublicTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/public/tags",
		Summary:     "List tags",
		Description: "Returns all tags ordered by name",
		Tags:        []string{"Public"},
	}, s.handleListPublicTags)
}

// === DTOs ===

// PublicListInput contains listing filters for the public site.
type PublicListInput struct {
	Query      string `query:"q" doc:"Case-insensitive substring over title and excerpt"`
	CategoryID string `query:"category_id" doc:"Category filter"`
	TagID      string `query:"tag_id" doc:"Tag filter"`
	AuthorID   string `query:"author_id" doc:"Author filter"`
	Offset     int    `query:"offset" doc:"Items to skip"`
	Limit      int    `query:"limit" doc:"Page size, max 100"`
}

// PublicArticleInput contains the article slug.
type PublicArticleInput struct {
	Slug string `path:"slug" doc:"Article slug"`
}

// CategoryListResponse contains all categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories" doc:"Categories in display order"`
}

// CategoryListOutput wraps the category list for Huma.
type CategoryListOutput struct {
	Body CategoryListResponse
}

// TagListResponse contains all tags.
type TagListResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags ordered by name"`
}

// TagListOutput wraps the tag list for Huma.
type TagListOutput struct {
	Body TagListResponse
}

// === Handlers ===

func (s *Server) handleListPublishedArticles(ctx context.Context, input *PublicListInput) (*ArticleListOutput, error) {
	page, err := s.services.Listing.ListPublished(ctx, service.ListFilter{
		Query:      input.Query,
		CategoryID: input.CategoryID,
		TagID:      input.TagID,
		AuthorID:   input.AuthorID,
	}, store.ListParams{Offset: input.Offset, Limit: input.Limit})
	if err != nil {
		return nil, err
	}

	body := toArticleListResponse(page)
	s.annotateArticles(ctx, body.Articles)
	return &ArticleListOutput{Body: body}, nil
}

func (s *Server) handleGetPublishedArticle(ctx context.Context, input *PublicArticleInput) (*ArticleOutput, error) {
	a, err := s.services.Articles.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	// Non-published articles don't exist as far as the public is concerned.
	if !a.IsPublished() {
		return nil, huma.Error404NotFound("Article not found")
	}

	if err := s.services.Articles.RecordView(ctx, a.ID); err != nil {
		s.logger.Warn("failed to record view", "article_id", a.ID, "error", err)
	} else {
		a.ViewCount++
	}

	resp := toArticleResponse(a, true)
	s.annotateArticle(ctx, &resp)
	return &ArticleOutput{Body: resp}, nil
}

func (s *Server) handleListPublicCategories(ctx context.Context, _ *struct{}) (*CategoryListOutput, error) {
	categories, err := s.services.Catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}

	return &CategoryListOutput{Body: CategoryListResponse{Categories: resp}}, nil
}

func (s *Server) handleListPublicTags(ctx context.Context, _ *struct{}) (*TagListOutput, error) {
	tags, err := s.services.Catalog.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = toTagResponse(t)
	}

	return &TagListOutput{Body: TagListResponse{Tags: resp}}, nil
}
