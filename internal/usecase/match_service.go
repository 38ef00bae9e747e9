package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/scorewise/predictions-api/internal/domain/match"
	"github.com/scorewise/predictions-api/internal/platform/cache"
	"github.com/scorewise/predictions-api/internal/platform/logging"
)

// MatchService serves the mirrored match read endpoints. Results are cached
// briefly because the scheduler refreshes the mirror on its own cadence and
// readers tolerate slightly stale rows.
type MatchService struct {
	matches match.Repository
	cache   *cache.Store
	logger  *logging.Logger
}

func NewMatchService(matches match.Repository, store *cache.Store, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{matches: matches, cache: store, logger: logger}
}

func (s *MatchService) ListLive(ctx context.Context, sport string) ([]match.Match, error) {
	return s.list(ctx, sport, "live", s.matches.ListLive)
}

func (s *MatchService) ListUpcoming(ctx context.Context, sport string) ([]match.Match, error) {
	return s.list(ctx, sport, "upcoming", s.matches.ListUpcoming)
}

func (s *MatchService) list(ctx context.Context, sport, kind string, load func(context.Context, string) ([]match.Match, error)) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.List")
	defer span.End()

	sport = strings.ToLower(strings.TrimSpace(sport))
	switch sport {
	case match.SportFootball, match.SportBasketball:
	default:
		return nil, fmt.Errorf("%w: unsupported sport %q", ErrInvalidInput, sport)
	}

	if s.cache == nil {
		return load(ctx, sport)
	}

	key := "matches:" + kind + ":" + sport
	out, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx, sport)
	})
	if err != nil {
		return nil, fmt.Errorf("list %s matches sport=%s: %w", kind, sport, err)
	}
	items, ok := out.([]match.Match)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", out)
	}
	return items, nil
}
