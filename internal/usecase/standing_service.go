package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/scorewise/predictions-api/internal/domain/standing"
	"github.com/scorewise/predictions-api/internal/platform/cache"
	"github.com/scorewise/predictions-api/internal/platform/logging"
)

type StandingService struct {
	standings standing.Repository
	cache     *cache.Store
	logger    *logging.Logger
}

func NewStandingService(standings standing.Repository, store *cache.Store, logger *logging.Logger) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingService{standings: standings, cache: store, logger: logger}
}

func (s *StandingService) GetTable(ctx context.Context, sport string, leagueRefID int64) (*standing.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingService.GetTable")
	defer span.End()

	sport = strings.ToLower(strings.TrimSpace(sport))
	if sport == "" {
		return nil, fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}
	if leagueRefID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	load := func(ctx context.Context) (any, error) {
		table, err := s.standings.GetLatest(ctx, sport, leagueRefID)
		if err != nil {
			return nil, err
		}
		if table == nil {
			return nil, fmt.Errorf("%w: standings sport=%s league_ref_id=%d", ErrNotFound, sport, leagueRefID)
		}
		return table, nil
	}

	var out any
	var err error
	if s.cache != nil {
		key := fmt.Sprintf("standings:%s:%d", sport, leagueRefID)
		out, err = s.cache.GetOrLoad(ctx, key, load)
	} else {
		out, err = load(ctx)
	}
	if err != nil {
		return nil, err
	}

	table, ok := out.(*standing.Table)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", out)
	}
	return table, nil
}
