package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fortuna/courtside/internal/ingest/nba"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func newTestService(t *testing.T, handler http.Handler) *GameService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := nba.NewClient(server.URL, server.URL, testLogger())
	return NewGameService(client, nba.NewTeamDirectory(), testLogger())
}

const liveScoreboardBody = `{
	"scoreboard": {
		"games": [
			{
				"gameId": "LIVE1",
				"gameStatus": 2,
				"period": 3,
				"gameClock": "PT07M12.00S",
				"homeTeam": {"teamId": 1610612738, "teamTricode": "BOS", "score": 80},
				"awayTeam": {"teamId": 1610612747, "teamTricode": "LAL", "score": 76}
			},
			{
				"gameId": "DONE1",
				"gameStatus": 3,
				"homeTeam": {"teamId": 1610612741, "teamTricode": "CHI", "score": 98},
				"awayTeam": {"teamId": 1610612748, "teamTricode": "MIA", "score": 101}
			}
		]
	}
}`

const summaryBody = `{
	"boxScoreSummary": {
		"gameId": "DONE1",
		"gameStatus": 3,
		"gameStatusText": "Final",
		"period": 4,
		"attendance": 20000,
		"homeTeam": {"teamId": 1610612741, "teamName": "Bulls", "teamTricode": "CHI", "score": 98},
		"awayTeam": {"teamId": 1610612748, "teamName": "Heat", "teamTricode": "MIA", "score": 101}
	}
}`

func TestGetGameDetailsUsesLivePayloadForLiveGame(t *testing.T) {
	var summaryCalls int
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "todaysScoreboard"):
			w.Write([]byte(liveScoreboardBody))
		case strings.Contains(r.URL.Path, "boxscoresummaryv3"):
			summaryCalls++
			w.Write([]byte(summaryBody))
		default:
			http.NotFound(w, r)
		}
	}))

	detail, err := svc.GetGameDetails(context.Background(), "LIVE1")
	if err != nil {
		t.Fatalf("GetGameDetails returned error: %v", err)
	}
	if detail.Status != nba.StatusLive {
		t.Errorf("Status = %q, want live", detail.Status)
	}
	if detail.HomeTeam.Score != 80 || detail.AwayTeam.Score != 76 {
		t.Errorf("live scores not used: %d-%d", detail.HomeTeam.Score, detail.AwayTeam.Score)
	}
	if summaryCalls != 0 {
		t.Errorf("summary endpoint called %d times for a live game, want 0", summaryCalls)
	}
}

func TestGetGameDetailsFallsBackWhenGameNotLive(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "todaysScoreboard"):
			w.Write([]byte(liveScoreboardBody))
		case strings.Contains(r.URL.Path, "boxscoresummaryv3"):
			w.Write([]byte(summaryBody))
		default:
			http.NotFound(w, r)
		}
	}))

	// DONE1 is on the live scoreboard but finished, so the summary wins.
	detail, err := svc.GetGameDetails(context.Background(), "DONE1")
	if err != nil {
		t.Fatalf("GetGameDetails returned error: %v", err)
	}
	if detail.StatusText != "Final" || detail.Attendance != 20000 {
		t.Errorf("summary payload not used: %+v", detail)
	}
}

func TestGetGameDetailsSwallowsProbeFailure(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "todaysScoreboard"):
			http.Error(w, "live feed down", http.StatusInternalServerError)
		case strings.Contains(r.URL.Path, "boxscoresummaryv3"):
			w.Write([]byte(summaryBody))
		default:
			http.NotFound(w, r)
		}
	}))

	detail, err := svc.GetGameDetails(context.Background(), "DONE1")
	if err != nil {
		t.Fatalf("probe failure should fall through to summary, got error: %v", err)
	}
	if detail.GameID != "DONE1" {
		t.Errorf("GameID = %q, want DONE1", detail.GameID)
	}
}

func TestGetGameDetailsNotFound(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "todaysScoreboard"):
			w.Write([]byte(`{"scoreboard": {"games": []}}`))
		case strings.Contains(r.URL.Path, "boxscoresummaryv3"):
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))

	_, err := svc.GetGameDetails(context.Background(), "MISSING")
	if !errors.Is(err, ErrGameNotFound) {
		t.Errorf("err = %v, want ErrGameNotFound", err)
	}
}

func TestGetPlayByPlayEmptyFeed(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"game": {"actions": []}}`))
	}))

	events, err := svc.GetPlayByPlay(context.Background(), "ANY")
	if err != nil {
		t.Fatalf("GetPlayByPlay returned error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestGetPlayByPlayUpstreamFailure(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	if _, err := svc.GetPlayByPlay(context.Background(), "ANY"); err == nil {
		t.Error("expected an error when the feed is unreachable")
	}
}

func TestGetRecentGamesTruncates(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "teamgamelog") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"resultSets": [{
				"headers": ["Game_ID", "GAME_DATE", "MATCHUP", "WL", "PTS", "FG_PCT", "FG3_PCT", "REB"],
				"rowSet": [
					["G5", "JAN 15", "BOS vs. LAL", "W", 112, 0.48, 0.40, 45],
					["G4", "JAN 13", "BOS @ NYK", "L", 102, 0.42, 0.32, 41],
					["G3", "JAN 11", "BOS vs. CHI", "W", 120, 0.51, 0.44, 48]
				]
			}]
		}`))
	}))

	records, err := svc.GetRecentGames(context.Background(), 1610612738, 2)
	if err != nil {
		t.Fatalf("GetRecentGames returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].GameID != "G5" || records[1].GameID != "G4" {
		t.Errorf("unexpected order: %+v", records)
	}
}
