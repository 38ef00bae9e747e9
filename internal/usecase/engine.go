package usecase

import (
	"math"
	"strings"
	"time"

	"github.com/scorewise/predictions-api/internal/domain/match"
	"github.com/scorewise/predictions-api/internal/domain/prediction"
	"github.com/scorewise/predictions-api/internal/domain/standing"
)

const defaultPredictionNotes = "Default prediction based on available data"

// EngineFixture is the canonical scoring input. Both the stored shape and the
// provider shape normalize into it before any rule runs, so the rules never
// branch on where a fixture came from.
type EngineFixture struct {
	Sport         string
	MatchRefID    int64
	LeagueRefID   int64
	LeagueName    string
	HomeTeamRefID int64
	AwayTeamRefID int64
	HomeTeam      string
	AwayTeam      string
	KickoffAt     time.Time
	Status        string
	HomeGoals     *int
	AwayGoals     *int
}

func FixtureFromStore(m match.Match) EngineFixture {
	return EngineFixture{
		Sport:         m.Sport,
		MatchRefID:    m.MatchRefID,
		LeagueRefID:   m.LeagueRefID,
		LeagueName:    m.LeagueName,
		HomeTeamRefID: m.HomeTeamRefID,
		AwayTeamRefID: m.AwayTeamRefID,
		HomeTeam:      m.HomeTeam,
		AwayTeam:      m.AwayTeam,
		KickoffAt:     m.KickoffAt,
		Status:        m.Status,
		HomeGoals:     m.HomeScore,
		AwayGoals:     m.AwayScore,
	}
}

func FixtureFromProvider(sport string, m ExternalMatch) EngineFixture {
	return EngineFixture{
		Sport:         sport,
		MatchRefID:    m.MatchRefID,
		LeagueRefID:   m.LeagueRefID,
		LeagueName:    m.LeagueName,
		HomeTeamRefID: m.HomeTeamRefID,
		AwayTeamRefID: m.AwayTeamRefID,
		HomeTeam:      m.HomeTeam,
		AwayTeam:      m.AwayTeam,
		KickoffAt:     m.KickoffAt,
		Status:        m.Status,
		HomeGoals:     m.HomeScore,
		AwayGoals:     m.AwayScore,
	}
}

// Engine derives betting tips from fixture data and an optional standings
// table. It is a pure computation; the callers own all I/O, including the
// best-effort standings lookup.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Generate runs every rule over one fixture. The standings table may be nil;
// rules that need it simply do not fire. Every fixture yields at least one
// prediction because of the fallback rule.
func (e *Engine) Generate(fixture EngineFixture, table *standing.Table) []prediction.Prediction {
	out := make([]prediction.Prediction, 0, 4)

	avgHome, avgAway, hasGoalData := goalAverages(fixture)
	total := avgHome + avgAway

	if hasGoalData && total >= 1.5 {
		tip := "Under 2.5"
		category := prediction.TypeAll
		if total >= 2.5 {
			tip = "Over 2.5"
			category = prediction.TypeBanker
		}
		out = append(out, e.build(fixture, category, tip, clampInt(int(math.Round(total*20)), 55, 85), ""))
	}

	homePoints, awayPoints, homeRank, awayRank, standingsOK := resolveStandings(fixture, table)
	if standingsOK && homePoints+awayPoints > 0 {
		homeShare := float64(homePoints) / float64(homePoints+awayPoints)
		awayShare := 1 - homeShare
		if homeShare > 0.70 {
			out = append(out, e.build(fixture, prediction.TypeBanker, "Home Win", minInt(90, int(math.Round(homeShare*100))), ""))
		} else if awayShare > 0.70 {
			out = append(out, e.build(fixture, prediction.TypeBanker, "Away Win", minInt(90, int(math.Round(awayShare*100))), ""))
		}
	}

	if hasGoalData && avgHome >= 1.0 && avgAway >= 1.0 {
		confidence := clampInt(int(math.Round((avgHome+avgAway)*15)), 60, 80)
		category := prediction.TypeAll
		if confidence >= 70 {
			category = prediction.TypeBanker
		}
		out = append(out, e.build(fixture, category, "Both Teams To Score", confidence, ""))
	}

	if standingsOK && homeRank > 0 && awayRank > 0 {
		gap := awayRank - homeRank
		if gap >= 1 && gap <= 3 {
			out = append(out, e.build(fixture, prediction.TypeSurprise, "Away Win or Draw", clampInt(60+2*gap, 55, 75), ""))
		}
	}

	// High-confidence tips are mirrored into the VIP tier as an overlay, not
	// recomputed.
	for _, base := range out {
		if base.Confidence < 80 {
			continue
		}
		vip := base
		vip.Type = prediction.TypeVIP
		vip.IsVIP = true
		out = append(out, vip)
	}

	if len(out) == 0 {
		out = append(out, e.build(fixture, prediction.TypeAll, "Over 1.5", 60, defaultPredictionNotes))
	}

	return out
}

func (e *Engine) build(fixture EngineFixture, category, tip string, confidence int, notes string) prediction.Prediction {
	return prediction.Prediction{
		Sport:      fixture.Sport,
		MatchRefID: fixture.MatchRefID,
		HomeTeam:   fixture.HomeTeam,
		AwayTeam:   fixture.AwayTeam,
		LeagueName: fixture.LeagueName,
		KickoffAt:  fixture.KickoffAt,
		Type:       category,
		Tip:        tip,
		Confidence: clampInt(confidence, 0, 100),
		Source:     prediction.SourceAI,
		IsVIP:      category == prediction.TypeVIP,
		IsPublic:   true,
		Status:     prediction.StatusPending,
		Notes:      notes,
	}
}

// goalAverages estimates per-side goal averages from the data on the fixture
// itself. With only the current fixture available this degenerates to an
// average of one sample; a side with no data at all defaults to 1.0. The ok
// result is false when neither side carries any goal data.
func goalAverages(fixture EngineFixture) (home, away float64, ok bool) {
	home, away = 1.0, 1.0
	if fixture.HomeGoals != nil {
		home = float64(*fixture.HomeGoals)
		ok = true
	}
	if fixture.AwayGoals != nil {
		away = float64(*fixture.AwayGoals)
		ok = true
	}
	return home, away, ok
}

// resolveStandings matches both sides of a fixture against the table by team
// ref id first, falling back to an exact name match.
func resolveStandings(fixture EngineFixture, table *standing.Table) (homePoints, awayPoints, homeRank, awayRank int, ok bool) {
	if table == nil {
		return 0, 0, 0, 0, false
	}

	homeRow, homeOK := findStandingRow(table, fixture.HomeTeamRefID, fixture.HomeTeam)
	awayRow, awayOK := findStandingRow(table, fixture.AwayTeamRefID, fixture.AwayTeam)
	if !homeOK || !awayOK {
		return 0, 0, 0, 0, false
	}
	return homeRow.Points, awayRow.Points, homeRow.Position, awayRow.Position, true
}

func findStandingRow(table *standing.Table, teamRefID int64, teamName string) (standing.Row, bool) {
	for _, row := range table.Rows {
		if teamRefID > 0 && row.TeamRefID == teamRefID {
			return row, true
		}
	}
	name := strings.ToLower(strings.TrimSpace(teamName))
	if name == "" {
		return standing.Row{}, false
	}
	for _, row := range table.Rows {
		if strings.ToLower(strings.TrimSpace(row.TeamName)) == name {
			return row, true
		}
	}
	return standing.Row{}, false
}

// WinProbabilities returns the normalized home/draw/away probabilities used by
// the banker win heuristic, with a fixed 0.25 draw share before
// normalization. The three results always sum to 1.
func WinProbabilities(homePoints, awayPoints int) (home, draw, away float64) {
	if homePoints+awayPoints <= 0 {
		return 0.375, 0.25, 0.375
	}
	home = float64(homePoints) / float64(homePoints+awayPoints)
	away = float64(awayPoints) / float64(homePoints+awayPoints)
	draw = 0.25
	sum := home + draw + away
	return home / sum, draw / sum, away / sum
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func minInt(left, right int) int {
	if left < right {
		return left
	}
	return right
}
