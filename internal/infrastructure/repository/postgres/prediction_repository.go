package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/scorewise/predictions-api/internal/domain/prediction"
	qb "github.com/scorewise/predictions-api/internal/platform/querybuilder"
)

// predictionUpsertSuffix enforces the (sport, match_ref_id, tip) identity. A
// regenerated tip refreshes confidence and category instead of duplicating.
const predictionUpsertSuffix = `ON CONFLICT (sport, match_ref_id, tip) WHERE deleted_at IS NULL
DO UPDATE SET
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    league_name = EXCLUDED.league_name,
    kickoff_at = EXCLUDED.kickoff_at,
    prediction_type = EXCLUDED.prediction_type,
    confidence = EXCLUDED.confidence,
    source = EXCLUDED.source,
    is_vip = EXCLUDED.is_vip,
    is_public = EXCLUDED.is_public,
    notes = EXCLUDED.notes,
    updated_at = NOW()`

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Upsert(ctx context.Context, p prediction.Prediction) error {
	if p.MatchRefID <= 0 {
		return fmt.Errorf("match ref id must be greater than zero")
	}
	if strings.TrimSpace(p.Tip) == "" {
		return fmt.Errorf("prediction tip is required")
	}

	status := p.Status
	if status == "" {
		status = prediction.StatusPending
	}
	model := predictionInsertModel{
		Sport:      p.Sport,
		MatchRefID: p.MatchRefID,
		HomeTeam:   p.HomeTeam,
		AwayTeam:   p.AwayTeam,
		LeagueName: p.LeagueName,
		KickoffAt:  p.KickoffAt,
		Type:       p.Type,
		Tip:        strings.TrimSpace(p.Tip),
		Confidence: p.Confidence,
		Source:     p.Source,
		IsVIP:      p.IsVIP,
		IsPublic:   true,
		Status:     status,
		HomeScore:  intPtrToNullInt64(p.HomeScore),
		AwayScore:  intPtrToNullInt64(p.AwayScore),
		Notes:      p.Notes,
	}
	query, args, err := qb.InsertModel("predictions", model, predictionUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction match_ref_id=%d tip=%s: %w", p.MatchRefID, p.Tip, err)
	}
	return nil
}

func (r *PredictionRepository) List(ctx context.Context, filter prediction.Filter) ([]prediction.Prediction, error) {
	conditions := []qb.Condition{
		qb.Eq("is_public", true),
		qb.IsNull("deleted_at"),
	}
	if filter.Sport != "" {
		conditions = append(conditions, qb.Eq("sport", filter.Sport))
	}
	switch filter.Category {
	case "", prediction.TypeAll:
	case prediction.TypeVIP:
		conditions = append(conditions, qb.Expr("(is_vip = TRUE OR prediction_type = 'vip')"))
	default:
		conditions = append(conditions, qb.Eq("prediction_type", filter.Category))
	}
	if !filter.IncludeVIP {
		conditions = append(conditions, qb.Eq("is_vip", false), qb.Expr("prediction_type <> 'vip'"))
	}
	if !filter.IncludePast {
		conditions = append(conditions, qb.Expr("kickoff_at >= CURRENT_DATE"))
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	query, args, err := qb.Select("*").From("predictions").
		Where(conditions...).
		OrderBy("kickoff_at", "confidence DESC", "id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPredictionRow(row))
	}
	return out, nil
}

func (r *PredictionRepository) GetByID(ctx context.Context, id string) (*prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prediction id=%s: %w", id, err)
	}

	mapped := mapPredictionRow(row)
	return &mapped, nil
}

func (r *PredictionRepository) UpdateResult(ctx context.Context, id string, status string, homeScore, awayScore *int) error {
	query, args, err := qb.Update("predictions").
		Set("status", status).
		Set("home_score", intPtrToNullInt64(homeScore)).
		Set("away_score", intPtrToNullInt64(awayScore)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update prediction result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update prediction result id=%s: %w", id, err)
	}
	return nil
}

func (r *PredictionRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.Update("predictions").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete prediction id=%s: %w", id, err)
	}
	return nil
}

func mapPredictionRow(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:         row.PublicID,
		Sport:      row.Sport,
		MatchRefID: row.MatchRefID,
		HomeTeam:   row.HomeTeam,
		AwayTeam:   row.AwayTeam,
		LeagueName: row.LeagueName,
		KickoffAt:  row.KickoffAt,
		Type:       row.Type,
		Tip:        row.Tip,
		Confidence: row.Confidence,
		Source:     row.Source,
		IsVIP:      row.IsVIP,
		IsPublic:   row.IsPublic,
		Status:     row.Status,
		HomeScore:  nullInt64ToIntPtr(row.HomeScore),
		AwayScore:  nullInt64ToIntPtr(row.AwayScore),
		Notes:      row.Notes,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
