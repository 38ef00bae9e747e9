package postgres

import "time"

type standingRowTableModel struct {
	ID           int64     `db:"id"`
	Sport        string    `db:"sport"`
	LeagueRefID  int64     `db:"league_ref_id"`
	LeagueName   string    `db:"league_name"`
	Season       string    `db:"season"`
	Position     int       `db:"position"`
	TeamRefID    int64     `db:"team_ref_id"`
	TeamName     string    `db:"team_name"`
	Played       int       `db:"played"`
	Won          int       `db:"won"`
	Draw         int       `db:"draw"`
	Lost         int       `db:"lost"`
	GoalsFor     int       `db:"goals_for"`
	GoalsAgainst int       `db:"goals_against"`
	Points       int       `db:"points"`
	Form         string    `db:"form"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type standingRowInsertModel struct {
	Sport        string    `db:"sport"`
	LeagueRefID  int64     `db:"league_ref_id"`
	LeagueName   string    `db:"league_name"`
	Season       string    `db:"season"`
	Position     int       `db:"position"`
	TeamRefID    int64     `db:"team_ref_id"`
	TeamName     string    `db:"team_name"`
	Played       int       `db:"played"`
	Won          int       `db:"won"`
	Draw         int       `db:"draw"`
	Lost         int       `db:"lost"`
	GoalsFor     int       `db:"goals_for"`
	GoalsAgainst int       `db:"goals_against"`
	Points       int       `db:"points"`
	Form         string    `db:"form"`
	UpdatedAt    time.Time `db:"updated_at"`
}
