package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fortuna/courtside/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development (TODO: restrict in production)
	},
}

// Server pushes game updates to subscribers. Each connection gets its own
// poll loop bound to the connection's lifetime; there is no shared state
// between connections.
type Server struct {
	port     string
	server   *http.Server
	games    *service.GameService
	interval time.Duration
	logger   *slog.Logger
}

// NewServer creates a new WebSocket server polling on the given interval.
func NewServer(games *service.GameService, interval time.Duration, logger *slog.Logger) *Server {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		games:    games,
		interval: interval,
		logger:   logger,
	}
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.port = port

	router := mux.NewRouter()
	router.HandleFunc("/ws/games/{gameID}", s.HandleGameFeed)
	router.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	s.logger.Info("websocket server listening", "port", port)
	return s.server.ListenAndServe()
}

// HandleGameFeed upgrades the connection and streams updates for one game
// until the client disconnects or a fetch fails.
func (s *Server) HandleGameFeed(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["gameID"]

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "game_id", gameID, "error", err)
		return
	}

	connID := uuid.NewString()
	s.logger.Info("subscriber connected", "conn_id", connID, "game_id", gameID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Read pump: the client sends nothing we care about, but reading is how
	// we notice the peer closing the socket.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.pollLoop(ctx, conn, connID, gameID)

	conn.Close()
	s.logger.Info("subscriber disconnected", "conn_id", connID, "game_id", gameID)
}

// pollLoop pushes one round of updates immediately, then one per interval.
// Any fetch or write failure ends the feed: the policy here is
// close-and-report rather than retry, since the client can reconnect.
func (s *Server) pollLoop(ctx context.Context, conn *websocket.Conn, connID, gameID string) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.pushUpdates(ctx, conn, gameID); err != nil {
			s.logger.Error("feed terminated", "conn_id", connID, "game_id", gameID, "error", err)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// pushUpdates sends a game_update frame followed by a playbyplay_update
// frame.
func (s *Server) pushUpdates(ctx context.Context, conn *websocket.Conn, gameID string) error {
	details, err := s.games.GetGameDetails(ctx, gameID)
	if err != nil {
		return fmt.Errorf("fetching game details: %w", err)
	}
	if err := conn.WriteJSON(Message{Type: "game_update", Data: details}); err != nil {
		return fmt.Errorf("writing game update: %w", err)
	}

	events, err := s.games.GetPlayByPlay(ctx, gameID)
	if err != nil {
		return fmt.Errorf("fetching play-by-play: %w", err)
	}
	if err := conn.WriteJSON(Message{Type: "playbyplay_update", Data: events}); err != nil {
		return fmt.Errorf("writing play-by-play update: %w", err)
	}

	return nil
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "poll_interval": %q}`, s.interval)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Message is one frame pushed to subscribers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
