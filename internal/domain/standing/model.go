package standing

import "time"

// Row is one league table entry.
type Row struct {
	Position     int
	TeamRefID    int64
	TeamName     string
	Played       int
	Won          int
	Draw         int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
	Form         string
}

// Table is a full league standing snapshot. Snapshots are replaced wholesale
// per (sport, league, season) on every sync.
type Table struct {
	Sport       string
	LeagueRefID int64
	LeagueName  string
	Season      string
	Rows        []Row
	UpdatedAt   time.Time
}

// RankOf returns the table position of the given team, or 0 when the team is
// not in the table.
func (t Table) RankOf(teamRefID int64) int {
	for _, row := range t.Rows {
		if row.TeamRefID == teamRefID {
			return row.Position
		}
	}
	return 0
}

// PointsOf returns the accumulated points of the given team and whether the
// team is present in the table.
func (t Table) PointsOf(teamRefID int64) (int, bool) {
	for _, row := range t.Rows {
		if row.TeamRefID == teamRefID {
			return row.Points, true
		}
	}
	return 0, false
}
