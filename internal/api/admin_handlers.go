package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Admin-only maintenance endpoints.
func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "reindexSearch",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/search/reindex",
		Summary:     "Rebuild search index",
		Description: "Rebuilds the full-text index from every published article",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReindexSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "sweepScheduled",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/publish/sweep",
		Summary:     "Sweep scheduled articles",
		Description: "Immediately publishes every due scheduled article",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSweepScheduled)
}

// AdminActionInput carries the authorization header.
type AdminActionInput struct {
	Authorization string `header:"Authorization"`
}

// CountResponse reports how many items an admin action touched.
type CountResponse struct {
	Count int `json:"count" doc:"Number of items affected"`
}

// CountOutput wraps the count response for Huma.
type CountOutput struct {
	Body CountResponse
}

func (s *Server) handleReindexSearch(ctx context.Context, _ *AdminActionInput) (*CountOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	indexed, err := s.services.Search.Reindex(ctx)
	if err != nil {
		return nil, err
	}

	return &CountOutput{Body: CountResponse{Count: indexed}}, nil
}

func (s *Server) handleSweepScheduled(ctx context.Context, _ *AdminActionInput) (*CountOutput, error) {
	if _, err := RequireEditor(ctx); err != nil {
		return nil, err
	}

	promoted, err := s.scheduler.PromoteDue(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	return &CountOutput{Body: CountResponse{Count: promoted}}, nil
}
