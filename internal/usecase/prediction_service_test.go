package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scorewise/predictions-api/internal/domain/prediction"
	"github.com/scorewise/predictions-api/internal/platform/logging"
)

func newReadService(predictions *stubPredictionRepo, standings *stubStandingRepo, provider *stubProvider) *PredictionService {
	return NewPredictionService(predictions, standings, provider, NewEngine(), []string{"football"}, logging.NewNop())
}

func TestPredictionService_ServesStoredRowsFirst(t *testing.T) {
	t.Parallel()

	predictions := newStubPredictionRepo()
	predictions.listOut = []prediction.Prediction{
		{ID: "p1", Tip: "Over 2.5", Type: prediction.TypeBanker, Confidence: 80},
	}
	provider := &stubProvider{
		fixturesFn: func(context.Context, string, time.Time) ([]ExternalMatch, error) {
			t.Error("live fallback must not run when the store has rows")
			return nil, nil
		},
	}
	service := newReadService(predictions, newStubStandingRepo(), provider)

	out, err := service.ListByCategory(context.Background(), ListPredictionsInput{Category: "banker"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.Source != "database" {
		t.Fatalf("expected database source, got %q", out.Source)
	}
	if len(out.Predictions) != 1 || out.Predictions[0].ID != "p1" {
		t.Fatalf("unexpected rows: %+v", out.Predictions)
	}
}

func TestPredictionService_LiveFallbackSynthesizesWithoutPersisting(t *testing.T) {
	t.Parallel()

	predictions := newStubPredictionRepo()
	provider := &stubProvider{
		fixturesFn: func(_ context.Context, _ string, _ time.Time) ([]ExternalMatch, error) {
			return []ExternalMatch{
				{MatchRefID: 500, HomeTeam: "Arsenal", AwayTeam: "Chelsea", Status: "NS"},
				{MatchRefID: 501, HomeTeam: "Leeds", AwayTeam: "Fulham", Status: "FT"},
			}, nil
		},
	}
	service := newReadService(predictions, newStubStandingRepo(), provider)

	out, err := service.ListByCategory(context.Background(), ListPredictionsInput{Category: "all"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if out.Source != prediction.SourceLiveAPI {
		t.Fatalf("expected live-api source, got %q", out.Source)
	}
	// Only the not-yet-started fixture is scored, yielding its fallback tip.
	if len(out.Predictions) != 1 {
		t.Fatalf("expected one synthetic prediction, got %+v", out.Predictions)
	}
	p := out.Predictions[0]
	if p.Source != prediction.SourceLiveAPI {
		t.Fatalf("expected live-api source marker, got %q", p.Source)
	}
	if p.ID != "live-500-over-1.5" {
		t.Fatalf("unexpected synthetic id %q", p.ID)
	}
	if len(predictions.stored) != 0 {
		t.Fatal("fallback rows must never be persisted")
	}
}

func TestPredictionService_LiveFallbackFailureDegradesToMessage(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		fixturesFn: func(context.Context, string, time.Time) ([]ExternalMatch, error) {
			return nil, errors.New("provider down")
		},
	}
	service := newReadService(newStubPredictionRepo(), newStubStandingRepo(), provider)

	out, err := service.ListByCategory(context.Background(), ListPredictionsInput{Category: "all"})
	if err != nil {
		t.Fatalf("read path must not surface upstream failures: %v", err)
	}
	if len(out.Predictions) != 0 {
		t.Fatalf("expected empty result, got %+v", out.Predictions)
	}
	if out.Message == "" {
		t.Fatal("expected explanatory message for degraded result")
	}
}

func TestPredictionService_VIPCategoryRequiresMembership(t *testing.T) {
	t.Parallel()

	service := newReadService(newStubPredictionRepo(), newStubStandingRepo(), &stubProvider{})

	_, err := service.ListByCategory(context.Background(), ListPredictionsInput{Category: "vip"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestPredictionService_RejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	service := newReadService(newStubPredictionRepo(), newStubStandingRepo(), &stubProvider{})

	_, err := service.ListByCategory(context.Background(), ListPredictionsInput{Category: "wild"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestMatchesCategory_VisibilityRules(t *testing.T) {
	t.Parallel()

	vipRow := prediction.Prediction{Type: prediction.TypeVIP, IsVIP: true, Tip: "Over 2.5"}
	bankerRow := prediction.Prediction{Type: prediction.TypeBanker, Tip: "Home Win"}

	if matchesCategory(vipRow, prediction.TypeAll, false) {
		t.Fatal("non-VIP view must not see VIP rows")
	}
	if !matchesCategory(vipRow, prediction.TypeVIP, true) {
		t.Fatal("VIP view must see VIP rows")
	}
	if !matchesCategory(bankerRow, prediction.TypeBanker, false) {
		t.Fatal("banker view must see banker rows")
	}
	if matchesCategory(bankerRow, prediction.TypeSurprise, false) {
		t.Fatal("surprise view must not see banker rows")
	}
	if !matchesCategory(bankerRow, prediction.TypeAll, false) {
		t.Fatal("all view must see public rows")
	}
}

func TestPredictionService_UpdateResultValidatesStatus(t *testing.T) {
	t.Parallel()

	predictions := newStubPredictionRepo()
	predictions.stored["k"] = prediction.Prediction{ID: "p9", Tip: "Over 2.5"}
	service := newReadService(predictions, newStubStandingRepo(), &stubProvider{})

	if err := service.UpdateResult(context.Background(), "p9", "bogus", nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown status, got %v", err)
	}

	home, away := 2, 1
	if err := service.UpdateResult(context.Background(), "p9", "won", &home, &away); err != nil {
		t.Fatalf("update result: %v", err)
	}
	updated, _ := predictions.GetByID(context.Background(), "p9")
	if updated == nil || updated.Status != prediction.StatusWon {
		t.Fatalf("expected settled prediction, got %+v", updated)
	}
}

func TestPredictionService_UpdateResultMissingRow(t *testing.T) {
	t.Parallel()

	service := newReadService(newStubPredictionRepo(), newStubStandingRepo(), &stubProvider{})

	err := service.UpdateResult(context.Background(), "missing", "won", nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
