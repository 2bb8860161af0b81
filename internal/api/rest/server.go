package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fortuna/courtside/internal/service"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, games *service.GameService, analytics *service.AnalyticsService, logger *slog.Logger) *Server {
	handler := NewHandler(games, analytics, logger)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggingMiddleware(logger))
	router.Use(CORSMiddleware)

	router.HandleFunc("/", handler.Root).Methods("GET")
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Games
	router.HandleFunc("/games/{date}", handler.GetGamesByDate).Methods("GET")
	router.HandleFunc("/games/{gameID}/details", handler.GetGameDetails).Methods("GET")
	router.HandleFunc("/games/{gameID}/playbyplay", handler.GetPlayByPlay).Methods("GET")

	// Teams and analytics
	router.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	router.HandleFunc("/teams/{teamID}/form", handler.GetTeamForm).Methods("GET")
	router.HandleFunc("/matchup", handler.GetMatchup).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Router exposes the configured handler chain, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.server.Handler
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
