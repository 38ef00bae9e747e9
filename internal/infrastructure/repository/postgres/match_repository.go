package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/scorewise/predictions-api/internal/domain/match"
	qb "github.com/scorewise/predictions-api/internal/platform/querybuilder"
)

const (
	liveMatchesTable     = "live_matches"
	upcomingMatchesTable = "upcoming_matches"
)

// matchUpsertSuffix keeps (sport, match_ref_id) unique per table. Repeated
// upserts of identical content leave exactly one row.
const matchUpsertSuffix = `ON CONFLICT (sport, match_ref_id)
DO UPDATE SET
    league_ref_id = EXCLUDED.league_ref_id,
    league_name = EXCLUDED.league_name,
    season = EXCLUDED.season,
    home_team_ref_id = EXCLUDED.home_team_ref_id,
    away_team_ref_id = EXCLUDED.away_team_ref_id,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    kickoff_at = EXCLUDED.kickoff_at,
    status = EXCLUDED.status,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    last_updated = EXCLUDED.last_updated,
    updated_at = NOW()`

var openMatchStatuses = []any{"NS", "TBD", "SCHEDULED", "NOT_STARTED"}
var finishedMatchStatuses = []any{"FT", "AET", "PEN"}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) UpsertLive(ctx context.Context, m match.Match) error {
	return r.upsert(ctx, liveMatchesTable, m)
}

func (r *MatchRepository) UpsertUpcoming(ctx context.Context, m match.Match) error {
	return r.upsert(ctx, upcomingMatchesTable, m)
}

func (r *MatchRepository) upsert(ctx context.Context, table string, m match.Match) error {
	if m.MatchRefID <= 0 {
		return fmt.Errorf("match ref id must be greater than zero")
	}

	model := matchInsertModel{
		Sport:         m.Sport,
		MatchRefID:    m.MatchRefID,
		LeagueRefID:   m.LeagueRefID,
		LeagueName:    m.LeagueName,
		Season:        m.Season,
		HomeTeamRefID: m.HomeTeamRefID,
		AwayTeamRefID: m.AwayTeamRefID,
		HomeTeam:      m.HomeTeam,
		AwayTeam:      m.AwayTeam,
		KickoffAt:     m.KickoffAt,
		Status:        match.NormalizeStatus(m.Status),
		HomeScore:     intPtrToNullInt64(m.HomeScore),
		AwayScore:     intPtrToNullInt64(m.AwayScore),
		LastUpdated:   m.LastUpdated,
	}
	query, args, err := qb.InsertModel(table, model, matchUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert %s query: %w", table, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s sport=%s match_ref_id=%d: %w", table, m.Sport, m.MatchRefID, err)
	}
	return nil
}

func (r *MatchRepository) ListLive(ctx context.Context, sport string) ([]match.Match, error) {
	return r.list(ctx, liveMatchesTable, []qb.Condition{qb.Eq("sport", sport)})
}

func (r *MatchRepository) ListUpcoming(ctx context.Context, sport string) ([]match.Match, error) {
	return r.list(ctx, upcomingMatchesTable, []qb.Condition{qb.Eq("sport", sport)})
}

func (r *MatchRepository) ListOpenByDate(ctx context.Context, sport string, day time.Time) ([]match.Match, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	return r.list(ctx, upcomingMatchesTable, []qb.Condition{
		qb.Eq("sport", sport),
		qb.Gte("kickoff_at", dayStart),
		qb.Lt("kickoff_at", dayStart.AddDate(0, 0, 1)),
		qb.In("status", openMatchStatuses),
	})
}

func (r *MatchRepository) list(ctx context.Context, table string, conditions []qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select("*").From(table).
		Where(conditions...).
		OrderBy("kickoff_at", "match_ref_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list %s query: %w", table, err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Match{
			ID:            row.PublicID,
			Sport:         row.Sport,
			MatchRefID:    row.MatchRefID,
			LeagueRefID:   row.LeagueRefID,
			LeagueName:    row.LeagueName,
			Season:        row.Season,
			HomeTeamRefID: row.HomeTeamRefID,
			AwayTeamRefID: row.AwayTeamRefID,
			HomeTeam:      row.HomeTeam,
			AwayTeam:      row.AwayTeam,
			KickoffAt:     row.KickoffAt,
			Status:        row.Status,
			HomeScore:     nullInt64ToIntPtr(row.HomeScore),
			AwayScore:     nullInt64ToIntPtr(row.AwayScore),
			LastUpdated:   row.LastUpdated,
		})
	}
	return out, nil
}

// PruneFinishedLive deletes finished live rows whose last update is older than
// the cutoff. This is the live table's only eviction policy.
func (r *MatchRepository) PruneFinishedLive(ctx context.Context, sport string, cutoff time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom(liveMatchesTable).
		Where(
			qb.Eq("sport", sport),
			qb.In("status", finishedMatchStatuses),
			qb.Lt("last_updated", cutoff),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build prune live matches query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune live matches sport=%s: %w", sport, err)
	}
	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return pruned, nil
}
