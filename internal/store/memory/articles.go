package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

// CreateArticle inserts a new article.
// Returns store.ErrAlreadyExists when the slug is taken by a live article.
func (s *Store) CreateArticle(_ context.Context, a *domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[a.ID]; ok {
		return store.ErrAlreadyExists
	}
	for _, other := range s.articles {
		if other.DeletedAt == nil && other.Slug == a.Slug {
			return store.ErrAlreadyExists
		}
	}

	s.articles[a.ID] = cloneArticle(a)
	s.articleTags[a.ID] = append([]string(nil), a.TagIDs...)
	return nil
}

// GetArticleByID retrieves a live article by ID.
func (s *Store) GetArticleByID(_ context.Context, id string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLiveArticle(id)
}

// GetArticleBySlug retrieves a live article by slug.
func (s *Store) GetArticleBySlug(_ context.Context, slug string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.DeletedAt == nil && a.Slug == slug {
			return s.withTags(a), nil
		}
	}
	return nil, store.ErrNotFound
}

// getLiveArticle must be called with the lock held.
func (s *Store) getLiveArticle(id string) (*domain.Article, error) {
	a, ok := s.articles[id]
	if !ok || a.DeletedAt != nil {
		return nil, store.ErrNotFound
	}
	return s.withTags(a), nil
}

// withTags clones an article and attaches its tag associations.
// Must be called with the lock held.
func (s *Store) withTags(a *domain.Article) *domain.Article {
	c := cloneArticle(a)
	c.TagIDs = append([]string(nil), s.articleTags[a.ID]...)
	sort.Strings(c.TagIDs)
	return c
}

// UpdateArticle performs a full update of mutable content fields.
// Status and view count are excluded, matching the sqlite store.
func (s *Store) UpdateArticle(_ context.Context, a *domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.articles[a.ID]
	if !ok || existing.DeletedAt != nil {
		return store.ErrNotFound
	}
	for _, other := range s.articles {
		if other.ID != a.ID && other.DeletedAt == nil && other.Slug == a.Slug {
			return store.ErrAlreadyExists
		}
	}

	updated := cloneArticle(a)
	updated.Status = existing.Status
	updated.PublishedAt = existing.PublishedAt
	updated.ViewCount = existing.ViewCount
	updated.CreatedAt = existing.CreatedAt
	s.articles[a.ID] = updated
	s.articleTags[a.ID] = append([]string(nil), a.TagIDs...)
	return nil
}

// SoftDeleteArticle marks an article deleted, freeing its slug.
func (s *Store) SoftDeleteArticle(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok || a.DeletedAt != nil {
		return store.ErrNotFound
	}
	now := time.Now()
	a.DeletedAt = &now
	a.UpdatedAt = now
	return nil
}

// UpdateArticleStatus performs a compare-and-swap status transition.
func (s *Store) UpdateArticleStatus(_ context.Context, id string, from, to domain.ArticleStatus, publishedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok || a.DeletedAt != nil {
		return store.ErrNotFound
	}
	if a.Status != from {
		return store.ErrConflict
	}

	a.Status = to
	if publishedAt != nil {
		t := *publishedAt
		a.PublishedAt = &t
	} else {
		a.PublishedAt = nil
	}
	a.UpdatedAt = time.Now()
	return nil
}

// IncrementViewCount bumps the view counter of a published article.
func (s *Store) IncrementViewCount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok || a.DeletedAt != nil {
		return store.ErrNotFound
	}
	if a.Status == domain.StatusPublished {
		a.ViewCount++
	}
	return nil
}

// ListArticles returns a filtered, deterministically ordered page.
func (s *Store) ListArticles(_ context.Context, filter store.ArticleFilter, page store.ListParams) (*store.Page[*domain.Article], error) {
	page.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.Article
	for _, a := range s.articles {
		if a.DeletedAt != nil {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.CategoryID != "" && a.CategoryID != filter.CategoryID {
			continue
		}
		if filter.AuthorID != "" && a.AuthorID != filter.AuthorID {
			continue
		}
		if filter.TagID != "" && !contains(s.articleTags[a.ID], filter.TagID) {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(a.Title), q) &&
				!strings.Contains(strings.ToLower(a.Excerpt), q) {
				continue
			}
		}
		matched = append(matched, a)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)

	items := make([]*domain.Article, 0, end-start)
	for _, a := range matched[start:end] {
		items = append(items, s.withTags(a))
	}

	return &store.Page[*domain.Article]{
		Items:  items,
		Total:  total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}, nil
}

// ListDueArticles returns scheduled articles due at or before now, oldest first.
func (s *Store) ListDueArticles(_ context.Context, now time.Time, limit int) ([]*domain.Article, error) {
	if limit <= 0 {
		limit = 50
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []*domain.Article
	for _, a := range s.articles {
		if a.DeletedAt == nil && a.IsDue(now) {
			due = append(due, s.withTags(a))
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].PublishedAt.Before(*due[j].PublishedAt)
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// CountArticlesByCategory counts live articles referencing a category.
func (s *Store) CountArticlesByCategory(_ context.Context, categoryID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, a := range s.articles {
		if a.DeletedAt == nil && a.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// SetArticleTags replaces all tag associations for an article.
func (s *Store) SetArticleTags(_ context.Context, articleID string, tagIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articleTags[articleID] = append([]string(nil), tagIDs...)
	return nil
}

// GetArticleTags returns the tag IDs associated with an article.
func (s *Store) GetArticleTags(_ context.Context, articleID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tagIDs := append([]string(nil), s.articleTags[articleID]...)
	sort.Strings(tagIDs)
	return tagIDs, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
