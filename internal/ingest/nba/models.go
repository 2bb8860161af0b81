package nba

// GameStatus is the unified game state. Upstream sends numeric codes; every
// code outside {1,2,3} collapses to StatusUnknown.
type GameStatus = string

const (
	StatusPreLive  GameStatus = "pre-live"
	StatusLive     GameStatus = "live"
	StatusFinished GameStatus = "finished"
	StatusUnknown  GameStatus = "unknown"
)

// Team is one franchise from the static directory.
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
}

// GameSummary is one scoreboard row in the unified schema. Produced fresh
// per request; arena and broadcaster are always empty on this path because
// neither scoreboard family supplies them.
type GameSummary struct {
	GameID        string     `json:"gameId"`
	GameDate      string     `json:"gameDate"`
	HomeTeamID    int        `json:"homeTeamId"`
	HomeTeamName  string     `json:"homeTeamName"`
	HomeTeamAbbr  string     `json:"homeTeamAbbr"`
	AwayTeamID    int        `json:"awayTeamId"`
	AwayTeamName  string     `json:"awayTeamName"`
	AwayTeamAbbr  string     `json:"awayTeamAbbr"`
	Status        GameStatus `json:"status"`
	HomeScore     int        `json:"homeScore"`
	AwayScore     int        `json:"awayScore"`
	Quarter       int        `json:"quarter"`
	TimeRemaining string     `json:"timeRemaining"`
	Arena         string     `json:"arena"`
	Broadcaster   string     `json:"broadcaster"`
}

// Arena describes the venue block of a game detail.
type Arena struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// TeamBox is one side's box in a GameDetail. Periods, players and inactives
// are passed through from upstream largely unprocessed.
type TeamBox struct {
	TeamID      int           `json:"teamId"`
	TeamName    string        `json:"teamName"`
	TeamCity    string        `json:"teamCity"`
	TeamTricode string        `json:"teamTricode"`
	Wins        int           `json:"wins"`
	Losses      int           `json:"losses"`
	Score       int           `json:"score"`
	Periods     []interface{} `json:"periods"`
	Players     []interface{} `json:"players"`
	Inactives   []interface{} `json:"inactives"`
}

// LineScoreEntry is one team's period-by-period breakdown. Quarters the
// upstream has not sent yet are zero, never null. Always exactly two entries
// per GameDetail.
type LineScoreEntry struct {
	TeamID   int    `json:"teamId"`
	TeamAbbr string `json:"teamAbbr"`
	Q1       int    `json:"q1"`
	Q2       int    `json:"q2"`
	Q3       int    `json:"q3"`
	Q4       int    `json:"q4"`
	OT1      int    `json:"ot1"`
	OT2      int    `json:"ot2"`
	Total    int    `json:"total"`
}

// GameDetail is the unified full-game record produced from either the live
// scoreboard shape or the box score summary shape.
type GameDetail struct {
	GameID           string           `json:"gameId"`
	GameCode         string           `json:"gameCode"`
	Status           GameStatus       `json:"status"`
	StatusText       string           `json:"statusText"`
	Period           int              `json:"period"`
	GameClock        string           `json:"gameClock"`
	GameTimeUTC      string           `json:"gameTimeUTC"`
	GameEt           string           `json:"gameEt"`
	Duration         string           `json:"duration"`
	Arena            Arena            `json:"arena"`
	Attendance       int              `json:"attendance"`
	HomeTeam         TeamBox          `json:"homeTeam"`
	AwayTeam         TeamBox          `json:"awayTeam"`
	Officials        []interface{}    `json:"officials"`
	LastFiveMeetings []interface{}    `json:"lastFiveMeetings"`
	LineScore        []LineScoreEntry `json:"lineScore"`
}

// PlayByPlayEvent is one logged action, chronological by ActionNumber.
// Clock stays in the upstream's native format. X and Y are court
// coordinates; nil when the action has no location.
type PlayByPlayEvent struct {
	ActionNumber    int           `json:"actionNumber"`
	ActionType      string        `json:"actionType"`
	SubType         string        `json:"subType"`
	Descriptor      string        `json:"descriptor"`
	Clock           string        `json:"clock"`
	Period          int           `json:"period"`
	PeriodType      string        `json:"periodType"`
	TeamID          int           `json:"teamId"`
	TeamTricode     string        `json:"teamTricode"`
	PersonID        int           `json:"personId"`
	PlayerName      string        `json:"playerName"`
	PlayerNameI     string        `json:"playerNameI"`
	Description     string        `json:"description"`
	ScoreHome       string        `json:"scoreHome"`
	ScoreAway       string        `json:"scoreAway"`
	Possession      int           `json:"possession"`
	TimeActual      string        `json:"timeActual"`
	X               *float64      `json:"x"`
	Y               *float64      `json:"y"`
	Qualifiers      []interface{} `json:"qualifiers"`
	PersonIDsFilter []interface{} `json:"personIdsFilter"`
}

// TeamGameRecord is one row of a team's game log, the input unit for the
// matchup analytics.
type TeamGameRecord struct {
	GameID   string  `json:"gameId"`
	GameDate string  `json:"gameDate"`
	Matchup  string  `json:"matchup"`
	WinLoss  string  `json:"wl"`
	Points   float64 `json:"pts"`
	FGPct    float64 `json:"fgPct"`
	FG3Pct   float64 `json:"fg3Pct"`
	Rebounds float64 `json:"reb"`
}
