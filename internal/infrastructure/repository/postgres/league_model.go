package postgres

import "time"

type leagueTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	Sport       string    `db:"sport"`
	LeagueRefID int64     `db:"league_ref_id"`
	Name        string    `db:"name"`
	Country     string    `db:"country"`
	Season      string    `db:"season"`
	LogoURL     string    `db:"logo_url"`
	LastUpdated time.Time `db:"last_updated"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type leagueInsertModel struct {
	Sport       string    `db:"sport"`
	LeagueRefID int64     `db:"league_ref_id"`
	Name        string    `db:"name"`
	Country     string    `db:"country"`
	Season      string    `db:"season"`
	LogoURL     string    `db:"logo_url"`
	LastUpdated time.Time `db:"last_updated"`
}

type teamInsertModel struct {
	Sport       string    `db:"sport"`
	TeamRefID   int64     `db:"team_ref_id"`
	LeagueRefID int64     `db:"league_ref_id"`
	Name        string    `db:"name"`
	LogoURL     string    `db:"logo_url"`
	LastUpdated time.Time `db:"last_updated"`
}
