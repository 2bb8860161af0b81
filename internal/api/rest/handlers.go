package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fortuna/courtside/internal/ingest/nba"
	"github.com/fortuna/courtside/internal/service"
	"github.com/gorilla/mux"
)

const (
	serviceName    = "courtside"
	serviceVersion = "1.0.0"

	defaultFormGames = 10
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	games     *service.GameService
	analytics *service.AnalyticsService
	logger    *slog.Logger
}

// NewHandler creates a new handler
func NewHandler(games *service.GameService, analytics *service.AnalyticsService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		games:     games,
		analytics: analytics,
		logger:    logger,
	}
}

// Root identifies the service
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "NBA Game Data API",
		"version": serviceVersion,
	})
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// GetGamesByDate returns all games on a specific date. Upstream failures
// collapse to an empty list so callers can treat "no data" and "no games"
// the same way.
func (h *Handler) GetGamesByDate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dateStr := vars["date"]

	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	games, err := h.games.GetGamesByDate(r.Context(), dateStr)
	if err != nil {
		h.logger.Error("fetching games failed", "date", dateStr, "error", err)
		games = []nba.GameSummary{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}

// GetGameDetails returns the full detail for a game
func (h *Handler) GetGameDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["gameID"]

	details, err := h.games.GetGameDetails(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"details": details})
}

// GetPlayByPlay returns the action list for a game. An unavailable feed is
// an empty list, not an error.
func (h *Handler) GetPlayByPlay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["gameID"]

	events, err := h.games.GetPlayByPlay(r.Context(), gameID)
	if err != nil {
		h.logger.Error("fetching play-by-play failed", "game_id", gameID, "error", err)
		events = []nba.PlayByPlayEvent{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"play_by_play": events})
}

// GetTeams returns the static team directory
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": h.games.Teams().All()})
}

// GetTeamForm returns a team's recent-game averages
func (h *Handler) GetTeamForm(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teamID, err := strconv.Atoi(vars["teamID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	limit := queryLimit(r, "games", defaultFormGames)

	recent, err := h.games.GetRecentGames(r.Context(), teamID, limit)
	if err != nil {
		h.logger.Error("fetching recent games failed", "team_id", teamID, "error", err)
		recent = nil
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":           h.games.Teams().Lookup(teamID),
		"games_analyzed": len(recent),
		"form":           h.analytics.CalculateAverages(recent),
	})
}

// GetMatchup returns the analytics preview for home vs. away, resolved by
// team name or tricode.
func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	homeQuery := r.URL.Query().Get("home")
	awayQuery := r.URL.Query().Get("away")
	if homeQuery == "" || awayQuery == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameters 'home' and 'away'", nil)
		return
	}

	home, ok := h.games.Teams().Find(homeQuery)
	if !ok {
		respondError(w, http.StatusNotFound, "Home team not found", nil)
		return
	}
	away, ok := h.games.Teams().Find(awayQuery)
	if !ok {
		respondError(w, http.StatusNotFound, "Away team not found", nil)
		return
	}

	limit := queryLimit(r, "games", defaultFormGames)

	homeRecent, err := h.games.GetRecentGames(r.Context(), home.ID, limit)
	if err != nil {
		h.logger.Error("fetching home recent games failed", "team_id", home.ID, "error", err)
	}
	awayRecent, err := h.games.GetRecentGames(r.Context(), away.ID, limit)
	if err != nil {
		h.logger.Error("fetching away recent games failed", "team_id", away.ID, "error", err)
	}

	analysis := h.analytics.AnalyzeMatchup(homeRecent, awayRecent)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"home_team": home,
		"away_team": away,
		"analysis":  analysis,
	})
}

// queryLimit reads a bounded positive integer query parameter.
func queryLimit(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			return n
		}
	}
	return def
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
