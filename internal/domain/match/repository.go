package match

import (
	"context"
	"time"
)

// Repository mirrors provider fixtures into the live and upcoming tables.
// Live and upcoming rows are written independently; a match may exist in both
// while it transitions from scheduled to in-play.
type Repository interface {
	UpsertLive(ctx context.Context, m Match) error
	UpsertUpcoming(ctx context.Context, m Match) error
	ListLive(ctx context.Context, sport string) ([]Match, error)
	ListUpcoming(ctx context.Context, sport string) ([]Match, error)
	ListOpenByDate(ctx context.Context, sport string, day time.Time) ([]Match, error)
	PruneFinishedLive(ctx context.Context, sport string, cutoff time.Time) (int64, error)
}
