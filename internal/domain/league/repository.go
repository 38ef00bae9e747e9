package league

import "context"

type Repository interface {
	UpsertLeague(ctx context.Context, l League) error
	UpsertTeams(ctx context.Context, teams []Team) error
	ListLeagues(ctx context.Context, sport string) ([]League, error)
}
