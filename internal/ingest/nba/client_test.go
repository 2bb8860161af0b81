package nba

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newRecordingClient points both endpoint families at one fake upstream and
// records every path requested.
func newRecordingClient(t *testing.T) (*Client, *[]string) {
	t.Helper()

	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"scoreboard": {"games": []}}`))
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	return NewClient(server.URL, server.URL, logger), &paths
}

func TestFetchScoreboardSelectsLiveForToday(t *testing.T) {
	client, paths := newRecordingClient(t)

	// 2025-01-16 01:00 UTC is still 2025-01-15 at the fixed UTC-5 offset.
	client.SetNow(func() time.Time {
		return time.Date(2025, 1, 16, 1, 0, 0, 0, time.UTC)
	})

	if _, err := client.FetchScoreboard(context.Background(), "2025-01-15"); err != nil {
		t.Fatalf("FetchScoreboard returned error: %v", err)
	}

	if len(*paths) != 1 || !strings.Contains((*paths)[0], "todaysScoreboard") {
		t.Errorf("today's date should hit the live endpoint, got %v", *paths)
	}
}

func TestFetchScoreboardSelectsHistoricalForPastDate(t *testing.T) {
	client, paths := newRecordingClient(t)
	client.SetNow(func() time.Time {
		return time.Date(2025, 1, 16, 1, 0, 0, 0, time.UTC)
	})

	if _, err := client.FetchScoreboard(context.Background(), "2025-01-14"); err != nil {
		t.Fatalf("FetchScoreboard returned error: %v", err)
	}

	if len(*paths) != 1 || !strings.Contains((*paths)[0], "scoreboardv3") {
		t.Errorf("past date should hit the historical endpoint, got %v", *paths)
	}
}

func TestFetchScoreboardRejectsBadDate(t *testing.T) {
	client, _ := newRecordingClient(t)

	for _, date := range []string{"01/15/2025", "2025-13-40", "yesterday", ""} {
		if _, err := client.FetchScoreboard(context.Background(), date); err == nil {
			t.Errorf("FetchScoreboard(%q) should reject the date", date)
		}
	}
}

func TestTodayETFixedOffset(t *testing.T) {
	client, _ := newRecordingClient(t)

	tests := []struct {
		utc  time.Time
		want string
	}{
		// Before 05:00 UTC the ET date is still the previous day.
		{time.Date(2025, 1, 16, 4, 59, 0, 0, time.UTC), "01/15/2025"},
		{time.Date(2025, 1, 16, 5, 0, 0, 0, time.UTC), "01/16/2025"},
		{time.Date(2025, 1, 16, 23, 0, 0, 0, time.UTC), "01/16/2025"},
	}

	for _, tt := range tests {
		client.SetNow(func() time.Time { return tt.utc })
		if got := client.TodayET(); got != tt.want {
			t.Errorf("TodayET() at %v = %q, want %q", tt.utc, got, tt.want)
		}
	}
}

func TestCurrentSeasonRollsOverInOctober(t *testing.T) {
	client, _ := newRecordingClient(t)

	tests := []struct {
		utc  time.Time
		want string
	}{
		{time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(2025, 10, 25, 12, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2025, 12, 25, 12, 0, 0, 0, time.UTC), "2025-26"},
	}

	for _, tt := range tests {
		client.SetNow(func() time.Time { return tt.utc })
		if got := client.CurrentSeason(); got != tt.want {
			t.Errorf("CurrentSeason() at %v = %q, want %q", tt.utc, got, tt.want)
		}
	}
}

func TestFetchPropagatesUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	client := NewClient(server.URL, server.URL, logger)

	if _, err := client.FetchLiveScoreboard(context.Background()); err == nil {
		t.Error("expected error for 502 response")
	}
	if _, err := client.FetchGameSummary(context.Background(), "001"); err == nil {
		t.Error("expected error for 502 response")
	}
}

func TestFetchRejectsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	client := NewClient(server.URL, server.URL, logger)

	if _, err := client.FetchPlayByPlay(context.Background(), "001"); err == nil {
		t.Error("expected error for non-JSON body")
	}
}
