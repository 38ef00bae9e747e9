package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID            int64         `db:"id"`
	PublicID      string        `db:"public_id"`
	Sport         string        `db:"sport"`
	MatchRefID    int64         `db:"match_ref_id"`
	LeagueRefID   int64         `db:"league_ref_id"`
	LeagueName    string        `db:"league_name"`
	Season        string        `db:"season"`
	HomeTeamRefID int64         `db:"home_team_ref_id"`
	AwayTeamRefID int64         `db:"away_team_ref_id"`
	HomeTeam      string        `db:"home_team"`
	AwayTeam      string        `db:"away_team"`
	KickoffAt     time.Time     `db:"kickoff_at"`
	Status        string        `db:"status"`
	HomeScore     sql.NullInt64 `db:"home_score"`
	AwayScore     sql.NullInt64 `db:"away_score"`
	LastUpdated   time.Time     `db:"last_updated"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

type matchInsertModel struct {
	Sport         string        `db:"sport"`
	MatchRefID    int64         `db:"match_ref_id"`
	LeagueRefID   int64         `db:"league_ref_id"`
	LeagueName    string        `db:"league_name"`
	Season        string        `db:"season"`
	HomeTeamRefID int64         `db:"home_team_ref_id"`
	AwayTeamRefID int64         `db:"away_team_ref_id"`
	HomeTeam      string        `db:"home_team"`
	AwayTeam      string        `db:"away_team"`
	KickoffAt     time.Time     `db:"kickoff_at"`
	Status        string        `db:"status"`
	HomeScore     sql.NullInt64 `db:"home_score"`
	AwayScore     sql.NullInt64 `db:"away_score"`
	LastUpdated   time.Time     `db:"last_updated"`
}
