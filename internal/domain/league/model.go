package league

import "time"

// League is an upstream competition mirrored for the sync jobs. Only leagues
// on the configured major-league allow-list are persisted.
type League struct {
	ID          string
	Sport       string
	LeagueRefID int64
	Name        string
	Country     string
	Season      string
	LogoURL     string
	LastUpdated time.Time
}

// Team is a participant of a mirrored league.
type Team struct {
	ID          string
	Sport       string
	TeamRefID   int64
	LeagueRefID int64
	Name        string
	LogoURL     string
	LastUpdated time.Time
}
