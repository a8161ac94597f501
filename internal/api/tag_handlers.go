package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/f246632/rijeka-online/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/tags",
		Summary:     "Create tag",
		Description: "Creates a tag, or returns the existing one with the same slug",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag by ID",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag and detaches it from every article",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteTag)
}

// === DTOs ===

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" doc:"Tag display name"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateTagRequest
}

// TagOutput wraps a single tag for Huma.
type TagOutput struct {
	Body TagResponse
}

// GetTagInput contains parameters for getting a tag.
type GetTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Tag ID"`
}

// DeleteTagInput contains parameters for deleting a tag.
type DeleteTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	t, err := s.services.Catalog.CreateTag(ctx, service.CreateTagRequest{
		Name: input.Body.Name,
	}, actor)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: toTagResponse(t)}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *GetTagInput) (*TagOutput, error) {
	if _, err := GetActor(ctx); err != nil {
		return nil, err
	}

	t, err := s.services.Catalog.GetTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: toTagResponse(t)}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *DeleteTagInput) (*MessageOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteTag(ctx, input.ID, actor); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag deleted"}}, nil
}
