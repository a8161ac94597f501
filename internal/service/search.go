package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/search"
	"github.com/f246632/rijeka-online/internal/store"
)

// reindexBatchSize is how many articles are loaded per page during a full
// reindex.
const reindexBatchSize = 200

// SearchService bridges the store and the full-text index. It denormalizes
// category, author and tag names into search documents so results render
// without further lookups. Only published articles are indexed.
type SearchService struct {
	store  store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(st store.Store, index *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  st,
		index:  index,
		logger: logger,
	}
}

// Search runs a full-text query over published articles.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return result, nil
}

// IndexArticle converts an article to a search document and indexes it.
func (s *SearchService) IndexArticle(ctx context.Context, a *domain.Article) error {
	doc, err := s.buildDocument(ctx, a)
	if err != nil {
		return err
	}
	return s.index.IndexArticle(doc)
}

// RemoveArticle drops an article from the index.
func (s *SearchService) RemoveArticle(articleID string) error {
	return s.index.DeleteArticle(articleID)
}

// Reindex rebuilds the index from scratch out of every published article in
// the store. Used after mapping changes and by the admin reindex endpoint.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	if err := s.index.Rebuild(); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}

	filter := store.ArticleFilter{Status: domain.StatusPublished}

	total := 0
	for offset := 0; ; offset += reindexBatchSize {
		page, err := s.store.ListArticles(ctx, filter, store.ListParams{Offset: offset, Limit: reindexBatchSize})
		if err != nil {
			return total, mapArticleErr(err)
		}

		docs := make([]*search.Document, 0, len(page.Items))
		for _, a := range page.Items {
			doc, err := s.buildDocument(ctx, a)
			if err != nil {
				s.logger.Warn("skipping article during reindex", "article_id", a.ID, "error", err)
				continue
			}
			docs = append(docs, doc)
		}

		if err := s.index.IndexArticles(docs); err != nil {
			return total, fmt.Errorf("index batch: %w", err)
		}
		total += len(docs)

		if !page.HasMore() {
			break
		}
	}

	s.logger.Info("search reindex complete", "indexed", total)
	return total, nil
}

// DocumentCount returns the number of indexed articles.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// buildDocument loads the names the document denormalizes. Missing
// references degrade to empty strings rather than failing the indexing.
func (s *SearchService) buildDocument(ctx context.Context, a *domain.Article) (*search.Document, error) {
	var categorySlug, categoryName string
	if cat, err := s.store.GetCategoryByID(ctx, a.CategoryID); err == nil {
		categorySlug = cat.Slug
		categoryName = cat.Name
	} else {
		s.logger.Warn("indexing article with unknown category", "article_id", a.ID, "category_id", a.CategoryID)
	}

	var authorName string
	if author, err := s.store.GetUserByID(ctx, a.AuthorID); err == nil {
		authorName = author.Name
	}

	tagSlugs := make([]string, 0, len(a.TagIDs))
	for _, tagID := range a.TagIDs {
		if tag, err := s.store.GetTagByID(ctx, tagID); err == nil {
			tagSlugs = append(tagSlugs, tag.Slug)
		}
	}

	return search.ArticleToDocument(a, categorySlug, categoryName, authorName, tagSlugs), nil
}
