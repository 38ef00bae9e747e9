package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/scorewise/predictions-api/internal/domain/standing"
	standingmock "github.com/scorewise/predictions-api/internal/mocks/domain/standing"
	"github.com/scorewise/predictions-api/internal/platform/cache"
	"github.com/scorewise/predictions-api/internal/platform/logging"
)

func TestStandingService_GetTable_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	standingRepo := standingmock.NewRepository(t)

	service := NewStandingService(standingRepo, nil, logging.NewNop())
	expected := &standing.Table{
		Sport:       "football",
		LeagueRefID: 33973,
		LeagueName:  "Premier League",
		Season:      "2026",
		Rows: []standing.Row{
			{Position: 1, TeamRefID: 40, TeamName: "Liverpool", Points: 68},
			{Position: 2, TeamRefID: 50, TeamName: "Manchester City", Points: 64},
		},
		UpdatedAt: time.Now().UTC(),
	}

	standingRepo.
		On("GetLatest", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "football", int64(33973)).
		Return(expected, nil).
		Once()

	got, err := service.GetTable(ctx, "Football", 33973)
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	if got.LeagueRefID != expected.LeagueRefID {
		t.Fatalf("unexpected league ref id: got=%d want=%d", got.LeagueRefID, expected.LeagueRefID)
	}
	if len(got.Rows) != len(expected.Rows) {
		t.Fatalf("unexpected row count: got=%d want=%d", len(got.Rows), len(expected.Rows))
	}
}

func TestStandingService_GetTable_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	standingRepo := standingmock.NewRepository(t)
	service := NewStandingService(standingRepo, nil, logging.NewNop())

	standingRepo.
		On("GetLatest", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "football", int64(999)).
		Return(nil, nil).
		Once()

	_, err := service.GetTable(context.Background(), "football", 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStandingService_GetTable_CachesSnapshotUsingMockery(t *testing.T) {
	t.Parallel()

	standingRepo := standingmock.NewRepository(t)
	service := NewStandingService(standingRepo, cache.NewStore(time.Minute), logging.NewNop())

	standingRepo.
		On("GetLatest", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "basketball", int64(412)).
		Return(&standing.Table{Sport: "basketball", LeagueRefID: 412}, nil).
		Once()

	for i := 0; i < 3; i++ {
		got, err := service.GetTable(context.Background(), "basketball", 412)
		if err != nil {
			t.Fatalf("get table attempt %d: %v", i+1, err)
		}
		if got.LeagueRefID != 412 {
			t.Fatalf("unexpected league ref id: got=%d", got.LeagueRefID)
		}
	}
}

func TestStandingService_GetTable_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service := NewStandingService(standingmock.NewRepository(t), nil, logging.NewNop())

	if _, err := service.GetTable(context.Background(), "", 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty sport, got %v", err)
	}
	if _, err := service.GetTable(context.Background(), "football", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero league id, got %v", err)
	}
}
