package nba

import (
	"fmt"
	"strings"
)

// The 30 NBA franchises keyed by the league's numeric team id. Team
// identities change only between seasons, so a static table loaded once per
// process is sufficient; there is no refresh path.
var nbaTeams = []Team{
	{1610612737, "Atlanta Hawks", "ATL"},
	{1610612738, "Boston Celtics", "BOS"},
	{1610612751, "Brooklyn Nets", "BKN"},
	{1610612766, "Charlotte Hornets", "CHA"},
	{1610612741, "Chicago Bulls", "CHI"},
	{1610612739, "Cleveland Cavaliers", "CLE"},
	{1610612742, "Dallas Mavericks", "DAL"},
	{1610612743, "Denver Nuggets", "DEN"},
	{1610612765, "Detroit Pistons", "DET"},
	{1610612744, "Golden State Warriors", "GSW"},
	{1610612745, "Houston Rockets", "HOU"},
	{1610612754, "Indiana Pacers", "IND"},
	{1610612746, "Los Angeles Clippers", "LAC"},
	{1610612747, "Los Angeles Lakers", "LAL"},
	{1610612763, "Memphis Grizzlies", "MEM"},
	{1610612748, "Miami Heat", "MIA"},
	{1610612749, "Milwaukee Bucks", "MIL"},
	{1610612750, "Minnesota Timberwolves", "MIN"},
	{1610612740, "New Orleans Pelicans", "NOP"},
	{1610612752, "New York Knicks", "NYK"},
	{1610612760, "Oklahoma City Thunder", "OKC"},
	{1610612753, "Orlando Magic", "ORL"},
	{1610612755, "Philadelphia 76ers", "PHI"},
	{1610612756, "Phoenix Suns", "PHX"},
	{1610612757, "Portland Trail Blazers", "POR"},
	{1610612758, "Sacramento Kings", "SAC"},
	{1610612759, "San Antonio Spurs", "SAS"},
	{1610612761, "Toronto Raptors", "TOR"},
	{1610612762, "Utah Jazz", "UTA"},
	{1610612764, "Washington Wizards", "WAS"},
}

// TeamDirectory maps team ids to franchise records. Read-only after
// construction, safe for concurrent use without locking.
type TeamDirectory struct {
	byID map[int]Team
}

// NewTeamDirectory builds the directory from the static table.
func NewTeamDirectory() *TeamDirectory {
	byID := make(map[int]Team, len(nbaTeams))
	for _, t := range nbaTeams {
		byID[t.ID] = t
	}
	return &TeamDirectory{byID: byID}
}

// Lookup returns the team for an id. It never fails: unknown ids get a
// synthesized placeholder so downstream formatting can always assume a name
// exists.
func (d *TeamDirectory) Lookup(teamID int) Team {
	if t, ok := d.byID[teamID]; ok {
		return t
	}
	return Team{
		ID:           teamID,
		Name:         fmt.Sprintf("Team %d", teamID),
		Abbreviation: "UNK",
	}
}

// Name returns the full franchise name for an id.
func (d *TeamDirectory) Name(teamID int) string {
	return d.Lookup(teamID).Name
}

// Abbreviation returns the tricode for an id.
func (d *TeamDirectory) Abbreviation(teamID int) string {
	return d.Lookup(teamID).Abbreviation
}

// All returns every team in the directory.
func (d *TeamDirectory) All() []Team {
	teams := make([]Team, len(nbaTeams))
	copy(teams, nbaTeams)
	return teams
}

// Find resolves a team by tricode, full name, or partial name match.
// Returns false when nothing matches.
func (d *TeamDirectory) Find(query string) (Team, bool) {
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return Team{}, false
	}

	for _, t := range nbaTeams {
		if strings.ToLower(t.Abbreviation) == q || strings.ToLower(t.Name) == q {
			return t, true
		}
	}

	for _, t := range nbaTeams {
		if strings.Contains(strings.ToLower(t.Name), q) {
			return t, true
		}
	}

	return Team{}, false
}
