package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/f246632/rijeka-online/internal/service"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/categories",
		Summary:     "Create category",
		Description: "Creates a category at the end of the display order",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategory",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Get category",
		Description: "Returns a category by ID",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCategory",
		Method:      http.MethodPatch,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Update category",
		Description: "Renames or restyles a category; the slug never changes",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCategory",
		Method:      http.MethodDelete,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Delete category",
		Description: "Deletes an empty category; refused while articles reference it",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderCategories",
		Method:      http.MethodPut,
		Path:        "/api/v1/categories/order",
		Summary:     "Reorder categories",
		Description: "Replaces the display order with the given ID sequence",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReorderCategories)
}

// === DTOs ===

// CategoryRequest is the request body for creating a category.
type CategoryRequest struct {
	Name        string `json:"name" doc:"Display name"`
	Slug        string `json:"slug,omitempty" doc:"Explicit slug; derived from name when empty"`
	Description string `json:"description,omitempty" doc:"Description"`
	Color       string `json:"color,omitempty" doc:"Hex color for UI badges"`
	Icon        string `json:"icon,omitempty" doc:"Icon identifier"`
}

// CreateCategoryInput wraps the create request for Huma.
type CreateCategoryInput struct {
	Authorization string `header:"Authorization"`
	Body          CategoryRequest
}

// CategoryOutput wraps a single category for Huma.
type CategoryOutput struct {
	Body CategoryResponse
}

// GetCategoryInput contains parameters for getting a category.
type GetCategoryInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Category ID"`
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	Name        string `json:"name" doc:"Display name"`
	Description string `json:"description,omitempty" doc:"Description"`
	Color       string `json:"color,omitempty" doc:"Hex color for UI badges"`
	Icon        string `json:"icon,omitempty" doc:"Icon identifier"`
}

// UpdateCategoryInput wraps the update request for Huma.
type UpdateCategoryInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Category ID"`
	Body          UpdateCategoryRequest
}

// DeleteCategoryInput contains parameters for deleting a category.
type DeleteCategoryInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Category ID"`
}

// ReorderCategoriesRequest is the request body for reordering.
type ReorderCategoriesRequest struct {
	CategoryIDs []string `json:"category_ids" doc:"Every category ID in the desired order"`
}

// ReorderCategoriesInput wraps the reorder request for Huma.
type ReorderCategoriesInput struct {
	Authorization string `header:"Authorization"`
	Body          ReorderCategoriesRequest
}

// === Handlers ===

func (s *Server) handleCreateCategory(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Catalog.CreateCategory(ctx, service.CreateCategoryRequest{
		Name:        input.Body.Name,
		Slug:        input.Body.Slug,
		Description: input.Body.Description,
		Color:       input.Body.Color,
		Icon:        input.Body.Icon,
	}, actor)
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: toCategoryResponse(c)}, nil
}

func (s *Server) handleGetCategory(ctx context.Context, input *GetCategoryInput) (*CategoryOutput, error) {
	if _, err := GetActor(ctx); err != nil {
		return nil, err
	}

	c, err := s.services.Catalog.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: toCategoryResponse(c)}, nil
}

func (s *Server) handleUpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*CategoryOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Catalog.UpdateCategory(ctx, input.ID, service.UpdateCategoryRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Color:       input.Body.Color,
		Icon:        input.Body.Icon,
	}, actor)
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: toCategoryResponse(c)}, nil
}

func (s *Server) handleDeleteCategory(ctx context.Context, input *DeleteCategoryInput) (*MessageOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteCategory(ctx, input.ID, actor); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Category deleted"}}, nil
}

func (s *Server) handleReorderCategories(ctx context.Context, input *ReorderCategoriesInput) (*MessageOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Catalog.ReorderCategories(ctx, input.Body.CategoryIDs, actor); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Categories reordered"}}, nil
}
