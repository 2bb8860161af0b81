package nba

import (
	"fmt"
	"strconv"
	"strings"
)

// Team game log columns used by the analytics feed. Parsed by header name
// rather than hardcoded position so column reordering upstream doesn't break
// the mapping.
const (
	logColGameID  = "Game_ID"
	logColDate    = "GAME_DATE"
	logColMatchup = "MATCHUP"
	logColWL      = "WL"
	logColPoints  = "PTS"
	logColFGPct   = "FG_PCT"
	logColFG3Pct  = "FG3_PCT"
	logColReb     = "REB"
)

// ParseGameStatus maps the upstream numeric status code onto the unified
// enum. Codes outside {1,2,3} collapse to unknown.
func ParseGameStatus(code int) GameStatus {
	switch code {
	case 1:
		return StatusPreLive
	case 2:
		return StatusLive
	case 3:
		return StatusFinished
	default:
		return StatusUnknown
	}
}

// ParseScoreboardGames converts a scoreboard payload into unified game
// summaries. Both endpoint families nest games under scoreboard.games, so
// one parse path serves live and historical shapes. Team names come from
// the directory; the scoreboard path never carries arena or broadcaster.
func ParseScoreboardGames(raw map[string]interface{}, gameDate string, dir *TeamDirectory) []GameSummary {
	scoreboard := extractMap(raw, "scoreboard")
	rawGames := extractArray(scoreboard, "games")

	games := make([]GameSummary, 0, len(rawGames))
	for _, gameInterface := range rawGames {
		game, ok := gameInterface.(map[string]interface{})
		if !ok {
			continue
		}

		homeTeam := extractMap(game, "homeTeam")
		awayTeam := extractMap(game, "awayTeam")
		homeID := extractInt(homeTeam, "teamId")
		awayID := extractInt(awayTeam, "teamId")

		games = append(games, GameSummary{
			GameID:        extractString(game, "gameId"),
			GameDate:      gameDate,
			HomeTeamID:    homeID,
			HomeTeamName:  dir.Name(homeID),
			HomeTeamAbbr:  dir.Abbreviation(homeID),
			AwayTeamID:    awayID,
			AwayTeamName:  dir.Name(awayID),
			AwayTeamAbbr:  dir.Abbreviation(awayID),
			Status:        ParseGameStatus(extractInt(game, "gameStatus")),
			HomeScore:     extractInt(homeTeam, "score"),
			AwayScore:     extractInt(awayTeam, "score"),
			Quarter:       extractInt(game, "period"),
			TimeRemaining: extractString(game, "gameClock"),
			Arena:         "",
			Broadcaster:   "",
		})
	}

	return games
}

// ParseSummaryGameDetail converts a box score summary payload (historical
// shape) into a unified GameDetail.
func ParseSummaryGameDetail(raw map[string]interface{}) *GameDetail {
	game := extractMap(raw, "boxScoreSummary")
	if len(game) == 0 {
		return nil
	}
	return parseGameDetail(game, nil)
}

// ParseLiveGameDetail converts a live scoreboard game entry into a unified
// GameDetail. The live shape omits several summary-only fields; those
// default per type, and team identity falls back to the directory when the
// payload leaves it out.
func ParseLiveGameDetail(game map[string]interface{}, dir *TeamDirectory) *GameDetail {
	if len(game) == 0 {
		return nil
	}
	return parseGameDetail(game, dir)
}

// parseGameDetail is the shared normalization path. Logically equivalent
// live and historical payloads must produce identical details wherever both
// shapes carry the same field, so every field follows the same precedence:
// explicit payload value, then typed default.
func parseGameDetail(game map[string]interface{}, dir *TeamDirectory) *GameDetail {
	home := parseTeamBox(extractMap(game, "homeTeam"), dir)
	away := parseTeamBox(extractMap(game, "awayTeam"), dir)

	arena := extractMap(game, "arena")

	return &GameDetail{
		GameID:      extractString(game, "gameId"),
		GameCode:    extractString(game, "gameCode"),
		Status:      ParseGameStatus(extractInt(game, "gameStatus")),
		StatusText:  extractString(game, "gameStatusText"),
		Period:      extractInt(game, "period"),
		GameClock:   extractString(game, "gameClock"),
		GameTimeUTC: extractString(game, "gameTimeUTC"),
		GameEt:      extractString(game, "gameEt"),
		Duration:    extractString(game, "duration"),
		Arena: Arena{
			Name:    extractString(arena, "arenaName"),
			City:    extractString(arena, "arenaCity"),
			State:   extractString(arena, "arenaState"),
			Country: extractString(arena, "arenaCountry"),
		},
		Attendance:       extractInt(game, "attendance"),
		HomeTeam:         home,
		AwayTeam:         away,
		Officials:        extractArray(game, "officials"),
		LastFiveMeetings: extractArray(game, "lastFiveMeetings"),
		LineScore: []LineScoreEntry{
			lineScoreEntry(home),
			lineScoreEntry(away),
		},
	}
}

// parseTeamBox normalizes one side of a game. The summary shape carries
// teamWins/teamLosses, the live shape wins/losses; both are tried. When the
// payload has no identity fields at all (partial live entries), the
// directory fills name and tricode.
func parseTeamBox(team map[string]interface{}, dir *TeamDirectory) TeamBox {
	teamID := extractInt(team, "teamId")

	box := TeamBox{
		TeamID:      teamID,
		TeamName:    extractString(team, "teamName"),
		TeamCity:    extractString(team, "teamCity"),
		TeamTricode: extractString(team, "teamTricode"),
		Wins:        firstInt(extractInt(team, "teamWins"), extractInt(team, "wins")),
		Losses:      firstInt(extractInt(team, "teamLosses"), extractInt(team, "losses")),
		Score:       extractInt(team, "score"),
		Periods:     extractArray(team, "periods"),
		Players:     extractArray(team, "players"),
		Inactives:   extractArray(team, "inactives"),
	}

	if dir != nil {
		fallback := dir.Lookup(teamID)
		box.TeamName = fallbackString(box.TeamName, fallback.Name)
		box.TeamTricode = fallbackString(box.TeamTricode, fallback.Abbreviation)
	}

	return box
}

// lineScoreEntry builds the six-slot period breakdown for one team.
// Quarter N reads periods[N-1] when present, else 0, which keeps the entry
// robust to payloads that omit not-yet-played periods entirely.
func lineScoreEntry(box TeamBox) LineScoreEntry {
	return LineScoreEntry{
		TeamID:   box.TeamID,
		TeamAbbr: box.TeamTricode,
		Q1:       periodScore(box.Periods, 0),
		Q2:       periodScore(box.Periods, 1),
		Q3:       periodScore(box.Periods, 2),
		Q4:       periodScore(box.Periods, 3),
		OT1:      periodScore(box.Periods, 4),
		OT2:      periodScore(box.Periods, 5),
		Total:    box.Score,
	}
}

func periodScore(periods []interface{}, idx int) int {
	if idx >= len(periods) {
		return 0
	}
	period, ok := periods[idx].(map[string]interface{})
	if !ok {
		return 0
	}
	return extractInt(period, "score")
}

// FindScoreboardGame locates one game's raw entry inside a scoreboard
// payload. Used by the detail path to probe the live feed before falling
// back to the summary endpoint.
func FindScoreboardGame(raw map[string]interface{}, gameID string) (map[string]interface{}, bool) {
	scoreboard := extractMap(raw, "scoreboard")
	for _, gameInterface := range extractArray(scoreboard, "games") {
		game, ok := gameInterface.(map[string]interface{})
		if !ok {
			continue
		}
		if extractString(game, "gameId") == gameID {
			return game, true
		}
	}
	return nil, false
}

// GameStatusOf reads and maps the status code of a raw scoreboard game entry.
func GameStatusOf(game map[string]interface{}) GameStatus {
	return ParseGameStatus(extractInt(game, "gameStatus"))
}

// ParsePlayByPlay converts a play-by-play payload into unified events.
// Actions live under game.actions; an empty or missing list normalizes to
// an empty slice, not an error.
func ParsePlayByPlay(raw map[string]interface{}) []PlayByPlayEvent {
	game := extractMap(raw, "game")
	actions := extractArray(game, "actions")

	events := make([]PlayByPlayEvent, 0, len(actions))
	for _, actionInterface := range actions {
		action, ok := actionInterface.(map[string]interface{})
		if !ok {
			continue
		}

		events = append(events, PlayByPlayEvent{
			ActionNumber:    extractInt(action, "actionNumber"),
			ActionType:      extractString(action, "actionType"),
			SubType:         extractString(action, "subType"),
			Descriptor:      extractString(action, "descriptor"),
			Clock:           extractString(action, "clock"),
			Period:          extractInt(action, "period"),
			PeriodType:      extractString(action, "periodType"),
			TeamID:          extractInt(action, "teamId"),
			TeamTricode:     extractString(action, "teamTricode"),
			PersonID:        extractInt(action, "personId"),
			PlayerName:      extractString(action, "playerName"),
			PlayerNameI:     extractString(action, "playerNameI"),
			Description:     extractString(action, "description"),
			ScoreHome:       extractString(action, "scoreHome"),
			ScoreAway:       extractString(action, "scoreAway"),
			Possession:      extractInt(action, "possession"),
			TimeActual:      extractString(action, "timeActual"),
			X:               extractFloatPtr(action, "x"),
			Y:               extractFloatPtr(action, "y"),
			Qualifiers:      extractArray(action, "qualifiers"),
			PersonIDsFilter: extractArray(action, "personIdsFilter"),
		})
	}

	return events
}

// ParseTeamGameLog converts a game log payload (resultSets shape) into team
// game records, newest first as the upstream orders them.
func ParseTeamGameLog(raw map[string]interface{}) ([]TeamGameRecord, error) {
	resultSets := extractArray(raw, "resultSets")
	if len(resultSets) == 0 {
		return nil, fmt.Errorf("no result sets in game log payload")
	}

	resultSet, ok := resultSets[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed result set in game log payload")
	}

	// Column name -> index mapping, same technique as box score stat labels.
	headers := extractArray(resultSet, "headers")
	colIndex := make(map[string]int, len(headers))
	for i, headerInterface := range headers {
		if header, ok := headerInterface.(string); ok {
			colIndex[header] = i
		}
	}

	rows := extractArray(resultSet, "rowSet")
	records := make([]TeamGameRecord, 0, len(rows))
	for _, rowInterface := range rows {
		row, ok := rowInterface.([]interface{})
		if !ok {
			continue
		}

		cell := func(col string) interface{} {
			idx, ok := colIndex[col]
			if !ok || idx >= len(row) {
				return nil
			}
			return row[idx]
		}

		records = append(records, TeamGameRecord{
			GameID:   cellString(cell(logColGameID)),
			GameDate: cellString(cell(logColDate)),
			Matchup:  cellString(cell(logColMatchup)),
			WinLoss:  cellString(cell(logColWL)),
			Points:   cellFloat(cell(logColPoints)),
			FGPct:    cellFloat(cell(logColFGPct)),
			FG3Pct:   cellFloat(cell(logColFG3Pct)),
			Rebounds: cellFloat(cell(logColReb)),
		})
	}

	return records, nil
}

// Helper functions

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func fallbackString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

func extractFloatPtr(m map[string]interface{}, key string) *float64 {
	if v, ok := m[key]; ok {
		if f, ok := v.(float64); ok {
			return &f
		}
	}
	return nil
}

func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	case int:
		return val
	default:
		return 0
	}
}

func firstInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func cellFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	case int:
		return float64(val)
	default:
		return 0
	}
}
