package usecase

import (
	"context"
	"time"
)

// SportsDataProvider is the upstream sports API surface the sync jobs and the
// live read-path fallback depend on. Implementations normalize transport
// failures into typed errors; callers decide whether a failure aborts a batch.
type SportsDataProvider interface {
	FetchLiveMatches(ctx context.Context, sport string) ([]ExternalMatch, error)
	FetchFixturesByDate(ctx context.Context, sport string, day time.Time) ([]ExternalMatch, error)
	FetchLeagues(ctx context.Context, sport string) ([]ExternalLeague, error)
	FetchTeamsByLeague(ctx context.Context, sport string, leagueRefID int64) ([]ExternalTeam, error)
	FetchStandings(ctx context.Context, sport string, leagueRefID int64) (ExternalStandingTable, error)
}

type ExternalMatch struct {
	MatchRefID    int64
	LeagueRefID   int64
	LeagueName    string
	Season        string
	HomeTeamRefID int64
	AwayTeamRefID int64
	HomeTeam      string
	AwayTeam      string
	KickoffAt     time.Time
	Status        string
	HomeScore     *int
	AwayScore     *int
}

type ExternalLeague struct {
	LeagueRefID int64
	Name        string
	Country     string
	Season      string
	LogoURL     string
}

type ExternalTeam struct {
	TeamRefID   int64
	LeagueRefID int64
	Name        string
	LogoURL     string
}

type ExternalStandingRow struct {
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

type ExternalStandingTable struct {
	LeagueRefID int64
	LeagueName  string
	Season      string
	Rows        []ExternalStandingRow
}
