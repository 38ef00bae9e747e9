package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	ants "github.com/panjf2000/ants/v2"
	"github.com/scorewise/predictions-api/internal/domain/match"
	"github.com/scorewise/predictions-api/internal/domain/prediction"
	"github.com/scorewise/predictions-api/internal/domain/standing"
	"github.com/scorewise/predictions-api/internal/platform/logging"
)

// BatchConfig tunes the daily prediction run. Pacing is the delay between
// scored fixtures; upserts for one fixture fan out over the worker pool
// because they are idempotent and order-insensitive.
type BatchConfig struct {
	Sports        []string
	Pacing        time.Duration
	UpsertWorkers int
}

func (c BatchConfig) normalized() BatchConfig {
	if len(c.Sports) == 0 {
		c.Sports = []string{match.SportFootball, match.SportBasketball}
	}
	if c.Pacing <= 0 {
		c.Pacing = 500 * time.Millisecond
	}
	if c.UpsertWorkers <= 0 {
		c.UpsertWorkers = 4
	}
	return c
}

// BatchReport is the final accounting of one batch run.
type BatchReport struct {
	Success   bool   `json:"success"`
	Total     int    `json:"total"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
	Errors    int    `json:"errors"`
	Date      string `json:"date"`
}

type PredictionBatchService struct {
	matches     match.Repository
	standings   standing.Repository
	predictions prediction.Repository
	engine      *Engine
	cfg         BatchConfig
	logger      *logging.Logger
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewPredictionBatchService(
	matches match.Repository,
	standings standing.Repository,
	predictions prediction.Repository,
	engine *Engine,
	cfg BatchConfig,
	logger *logging.Logger,
) *PredictionBatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if engine == nil {
		engine = NewEngine()
	}
	return &PredictionBatchService{
		matches:     matches,
		standings:   standings,
		predictions: predictions,
		engine:      engine,
		cfg:         cfg.normalized(),
		logger:      logger,
		now:         time.Now,
		sleep:       sleepWithContext,
	}
}

// GenerateForDate scores every open fixture stored for the given day and
// persists the resulting predictions. Per-fixture failures are counted and
// skipped so one bad fixture never aborts the batch.
func (s *PredictionBatchService) GenerateForDate(ctx context.Context, day time.Time) (BatchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionBatchService.GenerateForDate")
	defer span.End()

	if day.IsZero() {
		day = s.now().UTC()
	}
	report := BatchReport{Date: day.UTC().Format("2006-01-02")}

	pool, err := ants.NewPool(s.cfg.UpsertWorkers)
	if err != nil {
		return report, fmt.Errorf("create upsert worker pool: %w", err)
	}
	defer pool.Release()

	var generated atomic.Int32
	var upsertErrors atomic.Int32
	var workers sync.WaitGroup
	standingsByLeague := make(map[string]*standing.Table)

	for _, sport := range s.cfg.Sports {
		fixtures, err := s.matches.ListOpenByDate(ctx, sport, day)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			report.Errors++
			s.logger.WarnContext(ctx, "list open fixtures failed, continuing with next sport", "sport", sport, "error", err)
			continue
		}

		for i, fixture := range fixtures {
			report.Total++
			if !match.IsOpenStatus(fixture.Status) {
				report.Skipped++
				continue
			}

			table := s.lookupStandings(ctx, standingsByLeague, sport, fixture.LeagueRefID)
			predictions := s.engine.Generate(FixtureFromStore(fixture), table)

			for _, p := range predictions {
				p := p
				workers.Add(1)
				if err := pool.Submit(func() {
					defer workers.Done()
					if err := s.predictions.Upsert(ctx, p); err != nil {
						upsertErrors.Add(1)
						s.logger.WarnContext(ctx, "upsert prediction failed", "match_ref_id", p.MatchRefID, "tip", p.Tip, "error", err)
						return
					}
					generated.Add(1)
				}); err != nil {
					workers.Done()
					upsertErrors.Add(1)
					s.logger.WarnContext(ctx, "submit prediction upsert failed", "match_ref_id", p.MatchRefID, "error", err)
				}
			}

			if i < len(fixtures)-1 {
				if err := s.sleep(ctx, s.cfg.Pacing); err != nil {
					workers.Wait()
					return report, err
				}
			}
		}
	}

	workers.Wait()
	report.Generated = int(generated.Load())
	report.Errors += int(upsertErrors.Load())
	report.Success = true

	s.logger.InfoContext(ctx, "prediction batch finished",
		"date", report.Date,
		"total", report.Total,
		"generated", report.Generated,
		"skipped", report.Skipped,
		"errors", report.Errors,
	)
	return report, nil
}

// lookupStandings memoizes the best-effort standings fetch per league for the
// duration of one batch run. Lookup failures degrade to scoring without
// standings.
func (s *PredictionBatchService) lookupStandings(ctx context.Context, memo map[string]*standing.Table, sport string, leagueRefID int64) *standing.Table {
	if leagueRefID <= 0 {
		return nil
	}
	key := fmt.Sprintf("%s:%d", sport, leagueRefID)
	if table, ok := memo[key]; ok {
		return table
	}

	table, err := s.standings.GetLatest(ctx, sport, leagueRefID)
	if err != nil {
		s.logger.DebugContext(ctx, "standings lookup failed, scoring without standings", "sport", sport, "league_ref_id", leagueRefID, "error", err)
		table = nil
	}
	memo[key] = table
	return table
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
