package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status",
		Tags:        []string{"System"},
	}, s.handleHealthCheck)
}

// HealthResponse contains server health status.
type HealthResponse struct {
	Status   string `json:"status" doc:"Overall status: healthy or degraded"`
	Database string `json:"database" doc:"Database status"`
	Indexed  uint64 `json:"indexed" doc:"Number of articles in the search index"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	resp := HealthResponse{Status: "healthy", Database: "ok"}

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health check database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
	}

	if count, err := s.services.Search.DocumentCount(); err == nil {
		resp.Indexed = count
	}

	return &HealthOutput{Body: resp}, nil
}
