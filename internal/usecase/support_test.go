package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/scorewise/predictions-api/internal/domain/league"
	"github.com/scorewise/predictions-api/internal/domain/match"
	"github.com/scorewise/predictions-api/internal/domain/prediction"
	"github.com/scorewise/predictions-api/internal/domain/standing"
)

type stubProvider struct {
	liveFn      func(ctx context.Context, sport string) ([]ExternalMatch, error)
	fixturesFn  func(ctx context.Context, sport string, day time.Time) ([]ExternalMatch, error)
	leaguesFn   func(ctx context.Context, sport string) ([]ExternalLeague, error)
	teamsFn     func(ctx context.Context, sport string, leagueRefID int64) ([]ExternalTeam, error)
	standingsFn func(ctx context.Context, sport string, leagueRefID int64) (ExternalStandingTable, error)
}

func (s *stubProvider) FetchLiveMatches(ctx context.Context, sport string) ([]ExternalMatch, error) {
	if s.liveFn == nil {
		return nil, nil
	}
	return s.liveFn(ctx, sport)
}

func (s *stubProvider) FetchFixturesByDate(ctx context.Context, sport string, day time.Time) ([]ExternalMatch, error) {
	if s.fixturesFn == nil {
		return nil, nil
	}
	return s.fixturesFn(ctx, sport, day)
}

func (s *stubProvider) FetchLeagues(ctx context.Context, sport string) ([]ExternalLeague, error) {
	if s.leaguesFn == nil {
		return nil, nil
	}
	return s.leaguesFn(ctx, sport)
}

func (s *stubProvider) FetchTeamsByLeague(ctx context.Context, sport string, leagueRefID int64) ([]ExternalTeam, error) {
	if s.teamsFn == nil {
		return nil, nil
	}
	return s.teamsFn(ctx, sport, leagueRefID)
}

func (s *stubProvider) FetchStandings(ctx context.Context, sport string, leagueRefID int64) (ExternalStandingTable, error) {
	if s.standingsFn == nil {
		return ExternalStandingTable{}, nil
	}
	return s.standingsFn(ctx, sport, leagueRefID)
}

type stubMatchRepo struct {
	mu       sync.Mutex
	live     map[string]match.Match
	upcoming map[string]match.Match

	upsertLiveErr     error
	upsertUpcomingErr error
	openByDate        []match.Match
	openByDateErr     error
	prunedCutoffs     []time.Time
}

func newStubMatchRepo() *stubMatchRepo {
	return &stubMatchRepo{
		live:     make(map[string]match.Match),
		upcoming: make(map[string]match.Match),
	}
}

func matchKey(m match.Match) string {
	return fmt.Sprintf("%s:%d", m.Sport, m.MatchRefID)
}

func (r *stubMatchRepo) UpsertLive(_ context.Context, m match.Match) error {
	if r.upsertLiveErr != nil {
		return r.upsertLiveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[matchKey(m)] = m
	return nil
}

func (r *stubMatchRepo) UpsertUpcoming(_ context.Context, m match.Match) error {
	if r.upsertUpcomingErr != nil {
		return r.upsertUpcomingErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upcoming[matchKey(m)] = m
	return nil
}

func (r *stubMatchRepo) ListLive(_ context.Context, sport string) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Match, 0, len(r.live))
	for _, m := range r.live {
		if m.Sport == sport {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMatchRepo) ListUpcoming(_ context.Context, sport string) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Match, 0, len(r.upcoming))
	for _, m := range r.upcoming {
		if m.Sport == sport {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMatchRepo) ListOpenByDate(_ context.Context, sport string, _ time.Time) ([]match.Match, error) {
	if r.openByDateErr != nil {
		return nil, r.openByDateErr
	}
	out := make([]match.Match, 0, len(r.openByDate))
	for _, m := range r.openByDate {
		if m.Sport == sport {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMatchRepo) PruneFinishedLive(_ context.Context, _ string, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prunedCutoffs = append(r.prunedCutoffs, cutoff)
	return 0, nil
}

type stubLeagueRepo struct {
	mu      sync.Mutex
	leagues map[int64]league.League
	teams   map[int64]league.Team
}

func newStubLeagueRepo() *stubLeagueRepo {
	return &stubLeagueRepo{
		leagues: make(map[int64]league.League),
		teams:   make(map[int64]league.Team),
	}
}

func (r *stubLeagueRepo) UpsertLeague(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leagues[l.LeagueRefID] = l
	return nil
}

func (r *stubLeagueRepo) UpsertTeams(_ context.Context, teams []league.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range teams {
		r.teams[t.TeamRefID] = t
	}
	return nil
}

func (r *stubLeagueRepo) ListLeagues(_ context.Context, sport string) ([]league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]league.League, 0, len(r.leagues))
	for _, l := range r.leagues {
		if l.Sport == sport {
			out = append(out, l)
		}
	}
	return out, nil
}

type stubStandingRepo struct {
	mu     sync.Mutex
	tables map[string]*standing.Table
	getErr error
}

func newStubStandingRepo() *stubStandingRepo {
	return &stubStandingRepo{tables: make(map[string]*standing.Table)}
}

func standingKey(sport string, leagueRefID int64) string {
	return fmt.Sprintf("%s:%d", sport, leagueRefID)
}

func (r *stubStandingRepo) ReplaceTable(_ context.Context, table standing.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := table
	r.tables[standingKey(table.Sport, table.LeagueRefID)] = &copied
	return nil
}

func (r *stubStandingRepo) GetLatest(_ context.Context, sport string, leagueRefID int64) (*standing.Table, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tables[standingKey(sport, leagueRefID)], nil
}

type stubPredictionRepo struct {
	mu        sync.Mutex
	stored    map[string]prediction.Prediction
	listOut   []prediction.Prediction
	listErr   error
	upsertErr error
}

func newStubPredictionRepo() *stubPredictionRepo {
	return &stubPredictionRepo{stored: make(map[string]prediction.Prediction)}
}

func predictionKey(p prediction.Prediction) string {
	return fmt.Sprintf("%s:%d:%s:%s", p.Sport, p.MatchRefID, p.Tip, p.Type)
}

func (r *stubPredictionRepo) Upsert(_ context.Context, p prediction.Prediction) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored[predictionKey(p)] = p
	return nil
}

func (r *stubPredictionRepo) List(_ context.Context, _ prediction.Filter) ([]prediction.Prediction, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.listOut, nil
}

func (r *stubPredictionRepo) GetByID(_ context.Context, id string) (*prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.stored {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *stubPredictionRepo) UpdateResult(_ context.Context, id string, status string, homeScore, awayScore *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.stored {
		if p.ID == id {
			p.Status = status
			p.HomeScore = homeScore
			p.AwayScore = awayScore
			r.stored[key] = p
			return nil
		}
	}
	return fmt.Errorf("prediction %s not found", id)
}

func (r *stubPredictionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.stored {
		if p.ID == id {
			delete(r.stored, key)
			return nil
		}
	}
	return nil
}
