package postgres

import (
	"database/sql"
	"time"
)

type predictionTableModel struct {
	ID         int64         `db:"id"`
	PublicID   string        `db:"public_id"`
	Sport      string        `db:"sport"`
	MatchRefID int64         `db:"match_ref_id"`
	HomeTeam   string        `db:"home_team"`
	AwayTeam   string        `db:"away_team"`
	LeagueName string        `db:"league_name"`
	KickoffAt  time.Time     `db:"kickoff_at"`
	Type       string        `db:"prediction_type"`
	Tip        string        `db:"tip"`
	Confidence int           `db:"confidence"`
	Source     string        `db:"source"`
	IsVIP      bool          `db:"is_vip"`
	IsPublic   bool          `db:"is_public"`
	Status     string        `db:"status"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Notes      string        `db:"notes"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
	DeletedAt  *time.Time    `db:"deleted_at"`
}

type predictionInsertModel struct {
	Sport      string        `db:"sport"`
	MatchRefID int64         `db:"match_ref_id"`
	HomeTeam   string        `db:"home_team"`
	AwayTeam   string        `db:"away_team"`
	LeagueName string        `db:"league_name"`
	KickoffAt  time.Time     `db:"kickoff_at"`
	Type       string        `db:"prediction_type"`
	Tip        string        `db:"tip"`
	Confidence int           `db:"confidence"`
	Source     string        `db:"source"`
	IsVIP      bool          `db:"is_vip"`
	IsPublic   bool          `db:"is_public"`
	Status     string        `db:"status"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Notes      string        `db:"notes"`
}
