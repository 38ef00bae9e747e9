package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/scorewise/predictions-api/internal/domain/match"
	"github.com/scorewise/predictions-api/internal/platform/logging"
)

func newBatchService(matches *stubMatchRepo, standings *stubStandingRepo, predictions *stubPredictionRepo) *PredictionBatchService {
	service := NewPredictionBatchService(matches, standings, predictions, NewEngine(), BatchConfig{
		Sports:        []string{"football"},
		Pacing:        time.Millisecond,
		UpsertWorkers: 2,
	}, logging.NewNop())
	service.sleep = func(context.Context, time.Duration) error { return nil }
	return service
}

func TestPredictionBatchService_EmptyDateReturnsCleanReport(t *testing.T) {
	t.Parallel()

	service := newBatchService(newStubMatchRepo(), newStubStandingRepo(), newStubPredictionRepo())

	report, err := service.GenerateForDate(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !report.Success {
		t.Fatal("expected success report")
	}
	if report.Total != 0 || report.Generated != 0 || report.Skipped != 0 || report.Errors != 0 {
		t.Fatalf("expected zeroed report, got %+v", report)
	}
	if report.Date != "2026-08-29" {
		t.Fatalf("unexpected report date %q", report.Date)
	}
}

func TestPredictionBatchService_GeneratesAndPersists(t *testing.T) {
	t.Parallel()

	matches := newStubMatchRepo()
	matches.openByDate = []match.Match{
		{Sport: "football", MatchRefID: 100, HomeTeam: "Arsenal", AwayTeam: "Chelsea", Status: "NS", LeagueRefID: 33973},
		{Sport: "football", MatchRefID: 101, HomeTeam: "Leeds", AwayTeam: "Fulham", Status: "FT", LeagueRefID: 33973},
	}
	predictions := newStubPredictionRepo()
	service := newBatchService(matches, newStubStandingRepo(), predictions)

	report, err := service.GenerateForDate(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if report.Total != 2 {
		t.Fatalf("expected total=2, got %d", report.Total)
	}
	if report.Skipped != 1 {
		t.Fatalf("expected the started fixture to be skipped, got %d", report.Skipped)
	}
	// Open fixture with no goal data and no standings produces the single
	// fallback prediction.
	if report.Generated != 1 {
		t.Fatalf("expected generated=1, got %d", report.Generated)
	}
	if len(predictions.stored) != 1 {
		t.Fatalf("expected one stored prediction, got %d", len(predictions.stored))
	}
}

func TestPredictionBatchService_CountsUpsertErrors(t *testing.T) {
	t.Parallel()

	matches := newStubMatchRepo()
	matches.openByDate = []match.Match{
		{Sport: "football", MatchRefID: 100, HomeTeam: "Arsenal", AwayTeam: "Chelsea", Status: "NS"},
	}
	predictions := newStubPredictionRepo()
	predictions.upsertErr = context.DeadlineExceeded
	service := newBatchService(matches, newStubStandingRepo(), predictions)

	report, err := service.GenerateForDate(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if report.Generated != 0 {
		t.Fatalf("expected no successful upserts, got %d", report.Generated)
	}
	if report.Errors != 1 {
		t.Fatalf("expected one counted error, got %d", report.Errors)
	}
	if !report.Success {
		t.Fatal("row-level errors must not fail the run")
	}
}

func TestPredictionBatchService_UsesStandingsWhenAvailable(t *testing.T) {
	t.Parallel()

	matches := newStubMatchRepo()
	matches.openByDate = []match.Match{
		{Sport: "football", MatchRefID: 100, HomeTeamRefID: 11, AwayTeamRefID: 12, HomeTeam: "Arsenal", AwayTeam: "Chelsea", Status: "NS", LeagueRefID: 33973},
	}
	standings := newStubStandingRepo()
	_ = standings.ReplaceTable(context.Background(), *standingsTable(60, 1, 20, 15))
	predictions := newStubPredictionRepo()
	service := newBatchService(matches, standings, predictions)

	if _, err := service.GenerateForDate(context.Background(), time.Time{}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	found := false
	for _, p := range predictions.stored {
		if p.Tip == "Home Win" && p.Confidence == 75 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected standings-driven Home Win prediction, got %+v", predictions.stored)
	}
}
