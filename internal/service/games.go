package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fortuna/courtside/internal/ingest/nba"
)

// ErrGameNotFound reports an unknown game id. Delivery layers map it to a
// 404 or a printed message; every other error means the upstream could not
// be reached or parsed.
var ErrGameNotFound = errors.New("game not found")

// GameService orchestrates the upstream client and the normalizer. It is
// stateless aside from the read-only team directory, so one instance serves
// all requests concurrently.
type GameService struct {
	client *nba.Client
	teams  *nba.TeamDirectory
	logger *slog.Logger
}

// NewGameService creates a new game service.
func NewGameService(client *nba.Client, teams *nba.TeamDirectory, logger *slog.Logger) *GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameService{
		client: client,
		teams:  teams,
		logger: logger,
	}
}

// Teams exposes the directory for delivery-layer lookups.
func (s *GameService) Teams() *nba.TeamDirectory {
	return s.teams
}

// GetGamesByDate returns the unified summaries for a date (YYYY-MM-DD).
// The client routes today's date to the live feed and any other date to the
// historical feed.
func (s *GameService) GetGamesByDate(ctx context.Context, gameDate string) ([]nba.GameSummary, error) {
	raw, err := s.client.FetchScoreboard(ctx, gameDate)
	if err != nil {
		return nil, fmt.Errorf("fetching scoreboard for %s: %w", gameDate, err)
	}

	return nba.ParseScoreboardGames(raw, gameDate, s.teams), nil
}

// GetGameDetails returns the unified detail for a game. The live scoreboard
// is probed first; its payload is used only when the game is present there
// and currently live. Every other case, including a probe failure, falls
// through to the box score summary endpoint.
func (s *GameService) GetGameDetails(ctx context.Context, gameID string) (*nba.GameDetail, error) {
	if live, ok := s.probeLiveGame(ctx, gameID); ok {
		return live, nil
	}

	raw, err := s.client.FetchGameSummary(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game summary for %s: %w", gameID, err)
	}

	detail := nba.ParseSummaryGameDetail(raw)
	if detail == nil || detail.GameID == "" {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}

	return detail, nil
}

// probeLiveGame checks whether the game is on the live scoreboard in a live
// state. Probe failures are logged and treated as a miss.
func (s *GameService) probeLiveGame(ctx context.Context, gameID string) (*nba.GameDetail, bool) {
	raw, err := s.client.FetchLiveScoreboard(ctx)
	if err != nil {
		s.logger.Debug("live scoreboard probe failed, falling back to summary",
			"game_id", gameID, "error", err)
		return nil, false
	}

	game, found := nba.FindScoreboardGame(raw, gameID)
	if !found || nba.GameStatusOf(game) != nba.StatusLive {
		return nil, false
	}

	detail := nba.ParseLiveGameDetail(game, s.teams)
	if detail == nil {
		return nil, false
	}
	return detail, true
}

// GetPlayByPlay returns the unified action list for a game. A feed with no
// actions yields an empty slice, not an error.
func (s *GameService) GetPlayByPlay(ctx context.Context, gameID string) ([]nba.PlayByPlayEvent, error) {
	raw, err := s.client.FetchPlayByPlay(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching play-by-play for %s: %w", gameID, err)
	}

	return nba.ParsePlayByPlay(raw), nil
}

// GetRecentGames returns a team's last n game-log rows from the current
// season, newest first.
func (s *GameService) GetRecentGames(ctx context.Context, teamID, n int) ([]nba.TeamGameRecord, error) {
	raw, err := s.client.FetchTeamGameLog(ctx, teamID, s.client.CurrentSeason())
	if err != nil {
		return nil, fmt.Errorf("fetching game log for team %d: %w", teamID, err)
	}

	records, err := nba.ParseTeamGameLog(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing game log for team %d: %w", teamID, err)
	}

	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}
