// Package api provides the HTTP API server and handlers for WaxMatch.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/waxmatchapp/waxmatch-server/internal/ratelimit"
	"github.com/waxmatchapp/waxmatch-server/internal/service"
	"github.com/waxmatchapp/waxmatch-server/internal/session"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	collections *service.CollectionService
	recommender *service.Recommender
	sessions    *session.Store
	limiter     *ratelimit.KeyedRateLimiter
	router      *chi.Mux
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(collections *service.CollectionService, recommender *service.Recommender, sessions *session.Store, logger *slog.Logger) *Server {
	s := &Server{
		collections: collections,
		recommender: recommender,
		sessions:    sessions,
		// Inbound limit per client IP. Analytics requests fan out into
		// several catalog calls each, so this is deliberately modest.
		limiter: ratelimit.New(2, 5),
		router:  chi.NewRouter(),
		logger:  logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server resources.
func (s *Server) Close() {
	s.limiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.rateLimitMiddleware)

		// Credential registration.
		r.Post("/session", s.handleCreateSession)
		r.Delete("/session", s.handleDeleteSession)

		// Collection retrieval. Public by default; ?auth=true uses the
		// caller's registered credentials.
		r.Get("/collection/{username}", s.handleFetchCollection)
		r.Get("/collection/{username}/search", s.handleSearchCrate)

		// Analytics.
		r.Post("/analyze/recommendations", s.handleAnalyzeRecommendations)
		r.Get("/compare/{mine}/{theirs}", s.handleCompareCollections)
	})
}
