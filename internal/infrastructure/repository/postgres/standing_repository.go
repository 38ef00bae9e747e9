package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/scorewise/predictions-api/internal/domain/standing"
	qb "github.com/scorewise/predictions-api/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

// ReplaceTable swaps the whole snapshot for one league inside a transaction.
// Standings are never merged; the provider's latest table wins.
func (r *StandingRepository) ReplaceTable(ctx context.Context, table standing.Table) error {
	if table.LeagueRefID <= 0 {
		return fmt.Errorf("league ref id must be greater than zero")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("standing_rows").
		Where(
			qb.Eq("sport", table.Sport),
			qb.Eq("league_ref_id", table.LeagueRefID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear standings: %w", err)
	}

	for _, row := range table.Rows {
		model := standingRowInsertModel{
			Sport:        table.Sport,
			LeagueRefID:  table.LeagueRefID,
			LeagueName:   table.LeagueName,
			Season:       table.Season,
			Position:     row.Position,
			TeamRefID:    row.TeamRefID,
			TeamName:     strings.TrimSpace(row.TeamName),
			Played:       row.Played,
			Won:          row.Won,
			Draw:         row.Draw,
			Lost:         row.Lost,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			Points:       row.Points,
			Form:         strings.TrimSpace(row.Form),
			UpdatedAt:    table.UpdatedAt,
		}
		query, args, err := qb.InsertModel("standing_rows", model, "")
		if err != nil {
			return fmt.Errorf("build insert standing row query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert standing row team_ref_id=%d: %w", row.TeamRefID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings: %w", err)
	}
	return nil
}

// GetLatest returns the stored snapshot, or nil when the league has none.
func (r *StandingRepository) GetLatest(ctx context.Context, sport string, leagueRefID int64) (*standing.Table, error) {
	query, args, err := qb.Select("*").From("standing_rows").
		Where(
			qb.Eq("sport", sport),
			qb.Eq("league_ref_id", leagueRefID),
		).
		OrderBy("position", "team_ref_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}

	var rows []standingRowTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings sport=%s league_ref_id=%d: %w", sport, leagueRefID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	table := &standing.Table{
		Sport:       sport,
		LeagueRefID: leagueRefID,
		LeagueName:  rows[0].LeagueName,
		Season:      rows[0].Season,
		UpdatedAt:   rows[0].UpdatedAt,
		Rows:        make([]standing.Row, 0, len(rows)),
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, standing.Row{
			Position:     row.Position,
			TeamRefID:    row.TeamRefID,
			TeamName:     row.TeamName,
			Played:       row.Played,
			Won:          row.Won,
			Draw:         row.Draw,
			Lost:         row.Lost,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			Points:       row.Points,
			Form:         row.Form,
		})
	}
	return table, nil
}
