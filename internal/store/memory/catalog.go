package memory

import (
	"context"
	"sort"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/id"
	"github.com/f246632/rijeka-online/internal/store"
)

// CreateCategory inserts a new category.
func (s *Store) CreateCategory(_ context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[c.ID]; ok {
		return store.ErrAlreadyExists
	}
	for _, other := range s.categories {
		if other.Slug == c.Slug || other.Name == c.Name {
			return store.ErrAlreadyExists
		}
	}
	s.categories[c.ID] = cloneCategory(c)
	return nil
}

// GetCategoryByID retrieves a category by ID.
func (s *Store) GetCategoryByID(_ context.Context, categoryID string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[categoryID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneCategory(c), nil
}

// GetCategoryBySlug retrieves a category by slug.
func (s *Store) GetCategoryBySlug(_ context.Context, slug string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Slug == slug {
			return cloneCategory(c), nil
		}
	}
	return nil, store.ErrNotFound
}

// ListCategories returns all categories ordered by display order with live
// article counts attached.
func (s *Store) ListCategories(_ context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cp := cloneCategory(c)
		for _, a := range s.articles {
			if a.DeletedAt == nil && a.CategoryID == c.ID {
				cp.ArticleCount++
			}
		}
		categories = append(categories, cp)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].DisplayOrder != categories[j].DisplayOrder {
			return categories[i].DisplayOrder < categories[j].DisplayOrder
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// UpdateCategory performs a full update of an existing category.
func (s *Store) UpdateCategory(_ context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[c.ID]; !ok {
		return store.ErrNotFound
	}
	for _, other := range s.categories {
		if other.ID != c.ID && (other.Slug == c.Slug || other.Name == c.Name) {
			return store.ErrAlreadyExists
		}
	}
	s.categories[c.ID] = cloneCategory(c)
	return nil
}

// DeleteCategory hard-deletes a category.
func (s *Store) DeleteCategory(_ context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[categoryID]; !ok {
		return store.ErrNotFound
	}
	delete(s.categories, categoryID)
	return nil
}

// ReorderCategories assigns display order following the given ID order.
// An unknown ID fails the whole operation without applying anything.
func (s *Store) ReorderCategories(_ context.Context, orderedIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, categoryID := range orderedIDs {
		if _, ok := s.categories[categoryID]; !ok {
			return store.ErrNotFound
		}
	}
	now := time.Now()
	for i, categoryID := range orderedIDs {
		c := s.categories[categoryID]
		c.DisplayOrder = i
		c.UpdatedAt = now
	}
	return nil
}

// CreateTag inserts a new tag.
func (s *Store) CreateTag(_ context.Context, t *domain.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createTagLocked(t)
}

func (s *Store) createTagLocked(t *domain.Tag) error {
	if _, ok := s.tags[t.ID]; ok {
		return store.ErrAlreadyExists
	}
	for _, other := range s.tags {
		if other.Slug == t.Slug || other.Name == t.Name {
			return store.ErrAlreadyExists
		}
	}
	s.tags[t.ID] = cloneTag(t)
	return nil
}

// GetTagByID retrieves a tag by ID.
func (s *Store) GetTagByID(_ context.Context, tagID string) (*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tags[tagID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneTag(t), nil
}

// GetTagBySlug retrieves a tag by slug.
func (s *Store) GetTagBySlug(_ context.Context, slug string) (*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tags {
		if t.Slug == slug {
			return cloneTag(t), nil
		}
	}
	return nil, store.ErrNotFound
}

// ListTags returns all tags ordered by slug.
func (s *Store) ListTags(_ context.Context) ([]*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]*domain.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		tags = append(tags, cloneTag(t))
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Slug < tags[j].Slug })
	return tags, nil
}

// FindOrCreateTagBySlug finds an existing tag by slug or creates a new one.
func (s *Store) FindOrCreateTagBySlug(_ context.Context, slug, name string) (*domain.Tag, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tags {
		if t.Slug == slug {
			return cloneTag(t), false, nil
		}
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, false, err
	}
	now := time.Now()
	t := &domain.Tag{
		Timestamps: domain.Timestamps{ID: tagID, CreatedAt: now, UpdatedAt: now},
		Name:       name,
		Slug:       slug,
	}
	if err := s.createTagLocked(t); err != nil {
		return nil, false, err
	}
	return cloneTag(t), true, nil
}

// DeleteTag removes a tag and detaches it from every article.
func (s *Store) DeleteTag(_ context.Context, tagID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[tagID]; !ok {
		return store.ErrNotFound
	}
	delete(s.tags, tagID)

	for articleID, tagIDs := range s.articleTags {
		kept := tagIDs[:0]
		for _, t := range tagIDs {
			if t != tagID {
				kept = append(kept, t)
			}
		}
		s.articleTags[articleID] = kept
	}
	return nil
}
