package standing

import "context"

type Repository interface {
	ReplaceTable(ctx context.Context, table Table) error
	GetLatest(ctx context.Context, sport string, leagueRefID int64) (*Table, error)
}
