package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/scorewise/predictions-api/internal/domain/league"
	qb "github.com/scorewise/predictions-api/internal/platform/querybuilder"
)

const leagueUpsertSuffix = `ON CONFLICT (sport, league_ref_id)
DO UPDATE SET
    name = EXCLUDED.name,
    country = EXCLUDED.country,
    season = EXCLUDED.season,
    logo_url = EXCLUDED.logo_url,
    last_updated = EXCLUDED.last_updated,
    updated_at = NOW()`

const teamUpsertSuffix = `ON CONFLICT (sport, team_ref_id)
DO UPDATE SET
    league_ref_id = EXCLUDED.league_ref_id,
    name = EXCLUDED.name,
    logo_url = EXCLUDED.logo_url,
    last_updated = EXCLUDED.last_updated,
    updated_at = NOW()`

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) UpsertLeague(ctx context.Context, l league.League) error {
	if l.LeagueRefID <= 0 {
		return fmt.Errorf("league ref id must be greater than zero")
	}

	model := leagueInsertModel{
		Sport:       l.Sport,
		LeagueRefID: l.LeagueRefID,
		Name:        l.Name,
		Country:     l.Country,
		Season:      l.Season,
		LogoURL:     l.LogoURL,
		LastUpdated: l.LastUpdated,
	}
	query, args, err := qb.InsertModel("leagues", model, leagueUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league sport=%s league_ref_id=%d: %w", l.Sport, l.LeagueRefID, err)
	}
	return nil
}

func (r *LeagueRepository) UpsertTeams(ctx context.Context, teams []league.Team) error {
	for _, t := range teams {
		if t.TeamRefID <= 0 {
			continue
		}
		model := teamInsertModel{
			Sport:       t.Sport,
			TeamRefID:   t.TeamRefID,
			LeagueRefID: t.LeagueRefID,
			Name:        t.Name,
			LogoURL:     t.LogoURL,
			LastUpdated: t.LastUpdated,
		}
		query, args, err := qb.InsertModel("teams", model, teamUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert team query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert team sport=%s team_ref_id=%d: %w", t.Sport, t.TeamRefID, err)
		}
	}
	return nil
}

func (r *LeagueRepository) ListLeagues(ctx context.Context, sport string) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("sport", sport)).
		OrderBy("league_ref_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues sport=%s: %w", sport, err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.League{
			ID:          row.PublicID,
			Sport:       row.Sport,
			LeagueRefID: row.LeagueRefID,
			Name:        row.Name,
			Country:     row.Country,
			Season:      row.Season,
			LogoURL:     row.LogoURL,
			LastUpdated: row.LastUpdated,
		})
	}
	return out, nil
}
