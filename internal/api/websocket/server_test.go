package websocket_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	wsapi "github.com/fortuna/courtside/internal/api/websocket"
	"github.com/fortuna/courtside/internal/ingest/nba"
	"github.com/fortuna/courtside/internal/service"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

const wsSummaryBody = `{
	"boxScoreSummary": {
		"gameId": "DONE1",
		"gameStatus": 3,
		"homeTeam": {"teamId": 1610612741, "teamTricode": "CHI", "score": 98},
		"awayTeam": {"teamId": 1610612748, "teamTricode": "MIA", "score": 101}
	}
}`

// newFeedServer wires a WebSocket server over a fake upstream that serves
// healthy rounds until failAfter summary fetches have happened.
func newFeedServer(t *testing.T, failAfter int64) *httptest.Server {
	t.Helper()

	var summaryCalls int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "todaysScoreboard"):
			w.Write([]byte(`{"scoreboard": {"games": []}}`))
		case strings.Contains(r.URL.Path, "boxscoresummaryv3"):
			if atomic.AddInt64(&summaryCalls, 1) > failAfter {
				http.Error(w, "upstream down", http.StatusInternalServerError)
				return
			}
			w.Write([]byte(wsSummaryBody))
		case strings.Contains(r.URL.Path, "playbyplay"):
			w.Write([]byte(`{"game": {"actions": [{"actionNumber": 1, "actionType": "period", "period": 1}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	client := nba.NewClient(upstream.URL, upstream.URL, testLogger())
	games := service.NewGameService(client, nba.NewTeamDirectory(), testLogger())
	feed := wsapi.NewServer(games, 30*time.Millisecond, testLogger())

	router := mux.NewRouter()
	router.HandleFunc("/ws/games/{gameID}", feed.HandleGameFeed)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func dialFeed(t *testing.T, server *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/games/" + gameID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial feed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

// readFrames drains the feed until the server closes it, returning every
// frame received.
func readFrames(t *testing.T, conn *websocket.Conn) []wsapi.Message {
	t.Helper()
	var frames []wsapi.Message
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return frames
		}
		var msg wsapi.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("frame is not valid JSON: %v", err)
		}
		frames = append(frames, msg)
	}
}

func TestFeedPushesPairedFrames(t *testing.T) {
	server := newFeedServer(t, 2)
	conn := dialFeed(t, server, "DONE1")

	frames := readFrames(t, conn)

	// Two healthy rounds of game_update + playbyplay_update, then the
	// third fetch fails and the server closes without sending more.
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	for i, frame := range frames {
		want := "game_update"
		if i%2 == 1 {
			want = "playbyplay_update"
		}
		if frame.Type != want {
			t.Errorf("frame %d type = %q, want %q", i, frame.Type, want)
		}
		if frame.Data == nil {
			t.Errorf("frame %d has no data", i)
		}
	}
}

func TestFeedClosesOnImmediateFailure(t *testing.T) {
	server := newFeedServer(t, 0)
	conn := dialFeed(t, server, "DONE1")

	frames := readFrames(t, conn)
	if len(frames) != 0 {
		t.Errorf("got %d frames before close, want 0", len(frames))
	}
}
