package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/scorewise/predictions-api/internal/domain/match"
	"github.com/scorewise/predictions-api/internal/domain/prediction"
	"github.com/scorewise/predictions-api/internal/domain/standing"
	"github.com/scorewise/predictions-api/internal/platform/logging"
)

const liveFallbackUnavailableMessage = "Predictions are temporarily unavailable, please try again later"

// PredictionList is what the read path returns. Source distinguishes stored
// rows from synthetic live-api fallbacks; Message explains an empty result
// when the fallback itself was unavailable.
type PredictionList struct {
	Predictions []prediction.Prediction
	Source      string
	Message     string
}

type ListPredictionsInput struct {
	Category    string
	IncludeVIP  bool
	IncludePast bool
	Page        int
	Limit       int
}

type PredictionService struct {
	predictions prediction.Repository
	standings   standing.Repository
	provider    SportsDataProvider
	engine      *Engine
	sports      []string
	logger      *logging.Logger
	now         func() time.Time
}

func NewPredictionService(
	predictions prediction.Repository,
	standings standing.Repository,
	provider SportsDataProvider,
	engine *Engine,
	sports []string,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	if engine == nil {
		engine = NewEngine()
	}
	if len(sports) == 0 {
		sports = []string{match.SportFootball, match.SportBasketball}
	}
	return &PredictionService{
		predictions: predictions,
		standings:   standings,
		provider:    provider,
		engine:      engine,
		sports:      sports,
		logger:      logger,
		now:         time.Now,
	}
}

// ListByCategory serves the prediction read path: stored rows first, then an
// on-the-fly generation pass over today's not-yet-started fixtures when the
// store has nothing for the category. Synthetic fallback rows are never
// persisted; a cold cache recomputes them on every request.
func (s *PredictionService) ListByCategory(ctx context.Context, input ListPredictionsInput) (PredictionList, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.ListByCategory")
	defer span.End()

	category := strings.ToLower(strings.TrimSpace(input.Category))
	if !prediction.IsValidType(category) {
		return PredictionList{}, fmt.Errorf("%w: unknown prediction category %q", ErrInvalidInput, input.Category)
	}
	if category == prediction.TypeVIP && !input.IncludeVIP {
		return PredictionList{}, fmt.Errorf("%w: vip predictions require an active membership", ErrForbidden)
	}

	stored, err := s.predictions.List(ctx, prediction.Filter{
		Category:    category,
		IncludeVIP:  input.IncludeVIP,
		IncludePast: input.IncludePast,
		Page:        input.Page,
		Limit:       input.Limit,
	})
	if err != nil {
		return PredictionList{}, fmt.Errorf("list stored predictions: %w", err)
	}
	if len(stored) > 0 {
		return PredictionList{Predictions: stored, Source: "database"}, nil
	}

	return s.liveFallback(ctx, category, input.IncludeVIP), nil
}

// liveFallback scores today's open fixtures directly from the provider. Any
// upstream failure degrades to an empty list with a message; this path never
// returns an error to the HTTP surface.
func (s *PredictionService) liveFallback(ctx context.Context, category string, includeVIP bool) PredictionList {
	now := s.now().UTC()
	out := make([]prediction.Prediction, 0, 16)
	fetchedAny := false

	for _, sport := range s.sports {
		fixtures, err := s.provider.FetchFixturesByDate(ctx, sport, now)
		if err != nil {
			s.logger.WarnContext(ctx, "live fallback fetch failed", "sport", sport, "error", err)
			continue
		}
		fetchedAny = true

		for _, item := range fixtures {
			if !match.IsOpenStatus(item.Status) {
				continue
			}
			fixture := FixtureFromProvider(sport, item)
			table := s.bestEffortStandings(ctx, sport, fixture.LeagueRefID)
			for _, p := range s.engine.Generate(fixture, table) {
				if !matchesCategory(p, category, includeVIP) {
					continue
				}
				p.ID = syntheticPredictionID(p)
				p.Source = prediction.SourceLiveAPI
				out = append(out, p)
			}
		}
	}

	if !fetchedAny {
		return PredictionList{Predictions: []prediction.Prediction{}, Source: prediction.SourceLiveAPI, Message: liveFallbackUnavailableMessage}
	}
	return PredictionList{Predictions: out, Source: prediction.SourceLiveAPI}
}

func (s *PredictionService) bestEffortStandings(ctx context.Context, sport string, leagueRefID int64) *standing.Table {
	if leagueRefID <= 0 {
		return nil
	}
	table, err := s.standings.GetLatest(ctx, sport, leagueRefID)
	if err != nil {
		return nil
	}
	return table
}

func (s *PredictionService) GetByID(ctx context.Context, id string) (*prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.GetByID")
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: prediction id is required", ErrInvalidInput)
	}
	found, err := s.predictions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get prediction id=%s: %w", id, err)
	}
	if found == nil {
		return nil, fmt.Errorf("%w: prediction id=%s", ErrNotFound, id)
	}
	return found, nil
}

// UpdateResult settles a stored prediction. Settlement is an admin operation;
// the engine never mutates persisted rows.
func (s *PredictionService) UpdateResult(ctx context.Context, id, status string, homeScore, awayScore *int) error {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.UpdateResult")
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: prediction id is required", ErrInvalidInput)
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if !prediction.IsValidStatus(status) {
		return fmt.Errorf("%w: unknown prediction status %q", ErrInvalidInput, status)
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.predictions.UpdateResult(ctx, id, status, homeScore, awayScore); err != nil {
		return fmt.Errorf("update prediction result id=%s: %w", id, err)
	}
	return nil
}

func (s *PredictionService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.Delete")
	defer span.End()

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.predictions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete prediction id=%s: %w", id, err)
	}
	return nil
}

// matchesCategory applies the read-path visibility rules: non-VIP views never
// see VIP rows, banker/surprise views filter by type, the all view returns
// every visible row.
func matchesCategory(p prediction.Prediction, category string, includeVIP bool) bool {
	isVIPRow := p.IsVIP || p.Type == prediction.TypeVIP
	if !includeVIP && isVIPRow {
		return false
	}
	switch category {
	case prediction.TypeVIP:
		return isVIPRow
	case prediction.TypeBanker, prediction.TypeSurprise:
		return p.Type == category
	default:
		return true
	}
}

func syntheticPredictionID(p prediction.Prediction) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(p.Tip), " ", "-"))
	return fmt.Sprintf("live-%d-%s", p.MatchRefID, slug)
}
