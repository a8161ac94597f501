// Package api provides the HTTP API server and handlers for the news portal.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/f246632/rijeka-online/internal/scheduler"
	"github.com/f246632/rijeka-online/internal/store"
)

const apiVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     store.Store
	services  *Services
	scheduler *scheduler.Scheduler
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
}

// Options configures the HTTP server.
type Options struct {
	AllowedOrigins []string
}

// NewServer creates the HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, sched *scheduler.Scheduler, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(clientInfoMiddleware)
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("Rijeka Online API", apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:     st,
		services:  services,
		scheduler: sched,
		router:    router,
		api:       api,
		logger:    logger,
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerPublicRoutes()
	s.registerSearchRoutes()
	s.registerArticleRoutes()
	s.registerCategoryRoutes()
	s.registerTagRoutes()
	s.registerUserRoutes()
	s.registerAdminRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
