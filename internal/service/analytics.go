package service

import (
	"fmt"

	"github.com/fortuna/courtside/internal/ingest/nba"
)

// formStatNA marks every stat in the degenerate no-games form.
const formStatNA = "N/A"

// TeamForm maps stat labels to values over a recent-game window: floats for
// the averages, a "W-L" string for the record, and "N/A" across the board
// when no games were supplied.
type TeamForm map[string]interface{}

// MatchupAnalysis is the derived, ephemeral preview of one matchup.
// TotalExpectedPts and PPGDiff are plain linear combinations of the two
// sides' scoring averages; there is no opponent, recency, or home-court
// weighting.
type MatchupAnalysis struct {
	HomeForm         TeamForm `json:"home_form"`
	AwayForm         TeamForm `json:"away_form"`
	TotalExpectedPts float64  `json:"total_expected_pts"`
	PPGDiff          float64  `json:"ppg_diff"`
}

// AnalyticsService computes descriptive matchup statistics. It holds no
// state; all inputs arrive per call.
type AnalyticsService struct{}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

// CalculateAverages computes arithmetic means of the scoring and shooting
// fields plus a won-loss tally over the supplied recent games. An empty
// list yields the all-"N/A" form rather than a division by zero.
func (s *AnalyticsService) CalculateAverages(recent []nba.TeamGameRecord) TeamForm {
	if len(recent) == 0 {
		return TeamForm{
			"record":  formStatNA,
			"PTS":     formStatNA,
			"FG_PCT":  formStatNA,
			"FG3_PCT": formStatNA,
			"REB":     formStatNA,
		}
	}

	var totalPts, totalFGPct, totalFG3Pct, totalReb float64
	wins, losses := 0, 0

	for _, game := range recent {
		totalPts += game.Points
		totalFGPct += game.FGPct
		totalFG3Pct += game.FG3Pct
		totalReb += game.Rebounds

		switch game.WinLoss {
		case "W":
			wins++
		case "L":
			losses++
		}
	}

	n := float64(len(recent))
	return TeamForm{
		"record":  fmt.Sprintf("%d-%d", wins, losses),
		"PTS":     totalPts / n,
		"FG_PCT":  totalFGPct / n,
		"FG3_PCT": totalFG3Pct / n,
		"REB":     totalReb / n,
	}
}

// AnalyzeMatchup averages each side independently and derives the expected
// total and the home scoring advantage from the two PTS means.
func (s *AnalyticsService) AnalyzeMatchup(homeRecent, awayRecent []nba.TeamGameRecord) MatchupAnalysis {
	homeForm := s.CalculateAverages(homeRecent)
	awayForm := s.CalculateAverages(awayRecent)

	homePts := formFloat(homeForm, "PTS")
	awayPts := formFloat(awayForm, "PTS")

	return MatchupAnalysis{
		HomeForm:         homeForm,
		AwayForm:         awayForm,
		TotalExpectedPts: homePts + awayPts,
		PPGDiff:          homePts - awayPts,
	}
}

// formFloat reads a numeric stat from a form; "N/A" entries read as zero.
func formFloat(form TeamForm, key string) float64 {
	if v, ok := form[key].(float64); ok {
		return v
	}
	return 0
}
