package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/service"
	"github.com/f246632/rijeka-online/internal/store"
)

func (s *Server) registerArticleRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createArticle",
		Method:      http.MethodPost,
		Path:        "/api/v1/articles",
		Summary:     "Create article",
		Description: "Creates a new article owned by the caller; publishers may submit it directly as PUBLISHED",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateArticle)

	huma.Register(s.api, huma.Operation{
		OperationID: "listArticles",
		Method:      http.MethodGet,
		Path:        "/api/v1/articles",
		Summary:     "List articles",
		Description: "Returns a filtered page of articles in any status, newest first",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListArticles)

	huma.Register(s.api, huma.Operation{
		OperationID: "getArticle",
		Method:      http.MethodGet,
		Path:        "/api/v1/articles/{id}",
		Summary:     "Get article",
		Description: "Returns an article by ID",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetArticle)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateArticle",
		Method:      http.MethodPut,
		Path:        "/api/v1/articles/{id}",
		Summary:     "Update article",
		Description: "Edits an article's content",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateArticle)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteArticle",
		Method:      http.MethodDelete,
		Path:        "/api/v1/articles/{id}",
		Summary:     "Delete article",
		Description: "Soft-deletes an article, freeing its slug",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteArticle)

	huma.Register(s.api, huma.Operation{
		OperationID: "transitionArticle",
		Method:      http.MethodPost,
		Path:        "/api/v1/articles/{id}/transition",
		Summary:     "Transition article",
		Description: "Moves an article along the publication lifecycle",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleTransitionArticle)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportArticleMarkdown",
		Method:      http.MethodGet,
		Path:        "/api/v1/articles/{id}/export",
		Summary:     "Export article as Markdown",
		Description: "Returns the article body converted to Markdown",
		Tags:        []string{"Articles"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleExportArticle)
}

// === DTOs ===

// ArticleRequest is the request body for creating and updating articles.
type ArticleRequest struct {
	Title           string   `json:"title" doc:"Headline"`
	Subtitle        string   `json:"subtitle,omitempty" doc:"Subheadline"`
	Excerpt         string   `json:"excerpt,omitempty" doc:"Listing excerpt; derived from content when empty"`
	Content         string   `json:"content" doc:"Rich-text HTML body"`
	Slug            string   `json:"slug,omitempty" doc:"Explicit slug; derived from title when empty"`
	Status          string   `json:"status,omitempty" doc:"Initial status on create: DRAFT (default) or PUBLISHED"`
	FeaturedImage   string   `json:"featured_image,omitempty" doc:"Lead image URL"`
	CategoryID      string   `json:"category_id" doc:"Category ID"`
	TagIDs          []string `json:"tag_ids,omitempty" doc:"Tag IDs to attach"`
	MetaTitle       string   `json:"meta_title,omitempty" doc:"SEO title override"`
	MetaDescription string   `json:"meta_description,omitempty" doc:"SEO description"`
	MetaKeywords    []string `json:"meta_keywords,omitempty" doc:"SEO keywords"`
}

// CreateArticleInput wraps the create request for Huma.
type CreateArticleInput struct {
	Authorization string `header:"Authorization"`
	Body          ArticleRequest
}

// ArticleOutput wraps a single article for Huma.
type ArticleOutput struct {
	Body ArticleResponse
}

// ListArticlesInput contains listing filters and pagination.
type ListArticlesInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" doc:"Case-insensitive substring over title and excerpt"`
	Status        string `query:"status" doc:"Lifecycle status filter"`
	CategoryID    string `query:"category_id" doc:"Category filter"`
	TagID         string `query:"tag_id" doc:"Tag filter"`
	AuthorID      string `query:"author_id" doc:"Author filter"`
	Offset        int    `query:"offset" doc:"Items to skip"`
	Limit         int    `query:"limit" doc:"Page size, max 100"`
}

// ArticleListOutput wraps an article page for Huma.
type ArticleListOutput struct {
	Body ArticleListResponse
}

// GetArticleInput contains parameters for getting an article.
type GetArticleInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Article ID"`
}

// UpdateArticleInput wraps the update request for Huma.
type UpdateArticleInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Article ID"`
	Body          ArticleRequest
}

// DeleteArticleInput contains parameters for deleting an article.
type DeleteArticleInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Article ID"`
}

// TransitionRequest is the request body for a lifecycle transition.
type TransitionRequest struct {
	TargetStatus string     `json:"target_status" doc:"Status to move to"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty" doc:"Publication instant; required when scheduling"`
}

// TransitionArticleInput wraps the transition request for Huma.
type TransitionArticleInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Article ID"`
	Body          TransitionRequest
}

// === Handlers ===

func (s *Server) handleCreateArticle(ctx context.Context, input *CreateArticleInput) (*ArticleOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	a, err := s.services.Articles.Create(ctx, service.CreateArticleRequest{
		Title:           input.Body.Title,
		Subtitle:        input.Body.Subtitle,
		Excerpt:         input.Body.Excerpt,
		Content:         input.Body.Content,
		Slug:            input.Body.Slug,
		Status:          input.Body.Status,
		FeaturedImage:   input.Body.FeaturedImage,
		CategoryID:      input.Body.CategoryID,
		TagIDs:          input.Body.TagIDs,
		MetaTitle:       input.Body.MetaTitle,
		MetaDescription: input.Body.MetaDescription,
		MetaKeywords:    input.Body.MetaKeywords,
	}, actor)
	if err != nil {
		return nil, err
	}

	resp := toArticleResponse(a, true)
	s.annotateArticle(ctx, &resp)
	return &ArticleOutput{Body: resp}, nil
}

func (s *Server) handleListArticles(ctx context.Context, input *ListArticlesInput) (*ArticleListOutput, error) {
	if _, err := GetActor(ctx); err != nil {
		return nil, err
	}

	page, err := s.services.Listing.List(ctx, service.ListFilter{
		Query:      input.Query,
		Status:     input.Status,
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

func (s *Server) handleGetArticle(ctx context.Context, input *GetArticleInput) (*ArticleOutput, error) {
	if _, err := GetActor(ctx); err != nil {
		return nil, err
	}

	a, err := s.services.Articles.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := toArticleResponse(a, true)
	s.annotateArticle(ctx, &resp)
	return &ArticleOutput{Body: resp}, nil
}

func (s *Server) handleUpdateArticle(ctx context.Context, input *UpdateArticleInput) (*ArticleOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	a, err := s.services.Articles.Update(ctx, input.ID, service.UpdateArticleRequest{
		Title:           input.Body.Title,
		Subtitle:        input.Body.Subtitle,
		Excerpt:         input.Body.Excerpt,
		Content:         input.Body.Content,
		Slug:            input.Body.Slug,
		FeaturedImage:   input.Body.FeaturedImage,
		CategoryID:      input.Body.CategoryID,
		TagIDs:          input.Body.TagIDs,
		MetaTitle:       input.Body.MetaTitle,
		MetaDescription: input.Body.MetaDescription,
		MetaKeywords:    input.Body.MetaKeywords,
	}, actor)
	if err != nil {
		return nil, err
	}

	resp := toArticleResponse(a, true)
	s.annotateArticle(ctx, &resp)
	return &ArticleOutput{Body: resp}, nil
}

func (s *Server) handleDeleteArticle(ctx context.Context, input *DeleteArticleInput) (*MessageOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Articles.Delete(ctx, input.ID, actor); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Article deleted"}}, nil
}

func (s *Server) handleTransitionArticle(ctx context.Context, input *TransitionArticleInput) (*ArticleOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	a, err := s.services.Articles.Transition(ctx, input.ID,
		domain.ArticleStatus(input.Body.TargetStatus), input.Body.ScheduledAt, actor)
	if err != nil {
		return nil, err
	}

	resp := toArticleResponse(a, true)
	s.annotateArticle(ctx, &resp)
	return &ArticleOutput{Body: resp}, nil
}

// ExportArticleInput contains parameters for the Markdown export.
type ExportArticleInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Article ID"`
}

// ExportResponse carries an article body converted to Markdown.
type ExportResponse struct {
	ID       string `json:"id" doc:"Article ID"`
	Slug     string `json:"slug" doc:"URL-safe slug"`
	Title    string `json:"title" doc:"Headline"`
	Markdown string `json:"markdown" doc:"Article body as Markdown"`
}

// ExportOutput wraps the export response for Huma.
type ExportOutput struct {
	Body ExportResponse
}

func (s *Server) handleExportArticle(ctx context.Context, input *ExportArticleInput) (*ExportOutput, error) {
	if _, err := GetActor(ctx); err != nil {
		return nil, err
	}

	a, markdown, err := s.services.Articles.ExportMarkdown(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ExportOutput{Body: ExportResponse{
		ID:       a.ID,
		Slug:     a.Slug,
		Title:    a.Title,
		Markdown: markdown,
	}}, nil
}
