package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/f246632/rijeka-online/internal/domain"
	domainerrors "github.com/f246632/rijeka-online/internal/errors"
	"github.com/f246632/rijeka-online/internal/store"
)

// ListingService answers paginated article listings for the public site and
// the admin console. Public listings only ever see published articles.
type ListingService struct {
	store  store.Store
	logger *slog.Logger
}

// NewListingService creates a new listing service.
func NewListingService(st store.Store, logger *slog.Logger) *ListingService {
	return &ListingService{store: st, logger: logger}
}

// ListFilter is the caller-facing filter for article listings.
type ListFilter struct {
	// Query is matched as a case-insensitive substring of title and excerpt.
	Query      string
	Status     string
	CategoryID string
	TagID      string
	AuthorID   string
}

// List returns a page of articles matching the filter, newest first, along
// with the total match count. An unknown status is a validation error
// rather than an empty result, so typos surface instead of hiding articles.
func (s *ListingService) List(ctx context.Context, filter ListFilter, page store.ListParams) (*store.Page[*domain.Article], error) {
	sf := store.ArticleFilter{
		Query:      strings.TrimSpace(filter.Query),
		CategoryID: filter.CategoryID,
		TagID:      filter.TagID,
		AuthorID:   filter.AuthorID,
	}

	if filter.Status != "" {
		status := domain.ArticleStatus(strings.ToUpper(filter.Status))
		if !status.Valid() {
			return nil, domainerrors.Validation("unknown article status: " + filter.Status)
		}
		sf.Status = status
	}

	page.Normalize()
	result, err := s.store.ListArticles(ctx, sf, page)
	if err != nil {
		return nil, mapArticleErr(err)
	}
	return result, nil
}

// ListPublished returns a page of published articles. The status filter is
// forced, so public callers cannot peek at drafts regardless of input.
func (s *ListingService) ListPublished(ctx context.Context, filter ListFilter, page store.ListParams) (*store.Page[*domain.Article], error) {
	filter.Status = string(domain.StatusPublished)
	return s.List(ctx, filter, page)
}
