package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/f246632/rijeka-online/internal/domain"
	domainerrors "github.com/f246632/rijeka-online/internal/errors"
	"github.com/f246632/rijeka-online/internal/id"
	"github.com/f246632/rijeka-online/internal/slug"
	"github.com/f246632/rijeka-online/internal/store"
	"github.com/f246632/rijeka-online/internal/validation"
)

// CatalogService manages categories and tags. Category mutations are
// restricted to editors and admins; tags may be created by anyone in the
// newsroom since they are attached while writing.
type CatalogService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(st store.Store, validator *validation.Validator, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: st, validator: validator, logger: logger}
}

// CreateCategoryRequest contains a new category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug" validate:"omitempty,slug,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Icon        string `json:"icon" validate:"max=50"`
}

// UpdateCategoryRequest contains a category edit.
type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Icon        string `json:"icon" validate:"max=50"`
}

// CreateTagRequest contains a new tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

// CreateCategory adds a category at the end of the display order.
func (s *CatalogService) CreateCategory(ctx context.Context, req CreateCategoryRequest, actor domain.Actor) (*domain.Category, error) {
	if err := requirePublisher(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	categorySlug := req.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(req.Name)
		if categorySlug == "" {
			return nil, domainerrors.Validation("name produces an empty slug")
		}
	}

	categoryID, err := id.Generate("cat")
	if err != nil {
		return nil, fmt.Errorf("generate category id: %w", err)
	}

	existing, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, mapCategoryErr(err)
	}

	c := &domain.Category{
		Timestamps:   domain.Timestamps{ID: categoryID},
		Name:         req.Name,
		Slug:         categorySlug,
		Description:  req.Description,
		Color:        req.Color,
		Icon:         req.Icon,
		DisplayOrder: len(existing),
	}
	c.InitTimestamps()

	if err := s.store.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Name and slug are both unique; tell apart which collided.
			if _, slugErr := s.store.GetCategoryBySlug(ctx, categorySlug); slugErr == nil {
				return nil, domainerrors.DuplicateSlug(categorySlug)
			}
			return nil, domainerrors.Conflict("category name already in use")
		}
		return nil, mapCategoryErr(err)
	}

	s.logger.Info("category created", "category_id", c.ID, "slug", c.Slug, "actor_id", actor.UserID)
	return c, nil
}

// GetCategory returns a category by ID.
func (s *CatalogService) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	c, err := s.store.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, mapCategoryErr(err)
	}
	return c, nil
}

// GetCategoryBySlug returns a category by slug.
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, categorySlug string) (*domain.Category, error) {
	c, err := s.store.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, mapCategoryErr(err)
	}
	return c, nil
}

// ListCategories returns all categories in display order with live article
// counts.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, mapCategoryErr(err)
	}
	return categories, nil
}

// UpdateCategory renames or restyles a category. The slug never changes
// after creation, so published URLs stay stable.
func (s *CatalogService) UpdateCategory(ctx context.Context, categoryID string, req UpdateCategoryRequest, actor domain.Actor) (*domain.Category, error) {
	if err := requirePublisher(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	c, err := s.store.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, mapCategoryErr(err)
	}

	c.Name = req.Name
	c.Description = req.Description
	c.Color = req.Color
	c.Icon = req.Icon
	c.Touch()

	if err := s.store.UpdateCategory(ctx, c); err != nil {
		// The slug is immutable here, so a uniqueness violation can only
		// be the new name colliding with another category.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("category name already in use")
		}
		return nil, mapCategoryErr(err)
	}

	s.logger.Info("category updated", "category_id", c.ID, "actor_id", actor.UserID)
	return c, nil
}

// DeleteCategory removes an empty category. A category still referenced by
// any article (including non-published ones) is refused.
func (s *CatalogService) DeleteCategory(ctx context.Context, categoryID string, actor domain.Actor) error {
	if err := requirePublisher(actor); err != nil {
		return err
	}

	if _, err := s.store.GetCategoryByID(ctx, categoryID); err != nil {
		return mapCategoryErr(err)
	}

	count, err := s.store.CountArticlesByCategory(ctx, categoryID)
	if err != nil {
		return mapCategoryErr(err)
	}
	if count > 0 {
		return domainerrors.CategoryInUse("category still has articles", count)
	}

	if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
		return mapCategoryErr(err)
	}

	s.logger.Info("category deleted", "category_id", categoryID, "actor_id", actor.UserID)
	return nil
}

// ReorderCategories replaces the display order with the given ID sequence.
// Every existing category must appear exactly once.
func (s *CatalogService) ReorderCategories(ctx context.Context, orderedIDs []string, actor domain.Actor) error {
	if err := requirePublisher(actor); err != nil {
		return err
	}

	existing, err := s.store.ListCategories(ctx)
	if err != nil {
		return mapCategoryErr(err)
	}
	if len(orderedIDs) != len(existing) {
		return domainerrors.Validation(fmt.Sprintf("reorder must list all %d categories", len(existing)))
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, categoryID := range orderedIDs {
		if seen[categoryID] {
			return domainerrors.Validation("duplicate category id in reorder: " + categoryID)
		}
		seen[categoryID] = true
	}

	if err := s.store.ReorderCategories(ctx, orderedIDs); err != nil {
		return mapCategoryErr(err)
	}

	s.logger.Info("categories reordered", "count", len(orderedIDs), "actor_id", actor.UserID)
	return nil
}

// CreateTag creates a tag, or returns the existing one when the name slugs
// to a tag that already exists. The operation is idempotent by slug.
func (s *CatalogService) CreateTag(ctx context.Context, req CreateTagRequest, actor domain.Actor) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tagSlug := slug.Make(req.Name)
	if tagSlug == "" {
		return nil, domainerrors.Validation("name produces an empty slug")
	}

	tag, created, err := s.store.FindOrCreateTagBySlug(ctx, tagSlug, req.Name)
	if err != nil {
		return nil, mapTagErr(err)
	}

	if created {
		s.logger.Info("tag created", "tag_id", tag.ID, "slug", tag.Slug, "actor_id", actor.UserID)
	}
	return tag, nil
}

// GetTag returns a tag by ID.
func (s *CatalogService) GetTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	t, err := s.store.GetTagByID(ctx, tagID)
	if err != nil {
		return nil, mapTagErr(err)
	}
	return t, nil
}

// ListTags returns all tags ordered by name.
func (s *CatalogService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, mapTagErr(err)
	}
	return tags, nil
}

// DeleteTag removes a tag and detaches it from every article. Unlike
// categories, a tag in use may be deleted freely.
func (s *CatalogService) DeleteTag(ctx context.Context, tagID string, actor domain.Actor) error {
	if err := requirePublisher(actor); err != nil {
		return err
	}

	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		return mapTagErr(err)
	}

	s.logger.Info("tag deleted", "tag_id", tagID, "actor_id", actor.UserID)
	return nil
}

// requirePublisher rejects actors below editor.
func requirePublisher(actor domain.Actor) error {
	if actor.Role == domain.RoleAdmin || actor.Role == domain.RoleEditor {
		return nil
	}
	return domainerrors.Forbidden("requires editor or admin role")
}
