package prediction

import "context"

type Repository interface {
	Upsert(ctx context.Context, p Prediction) error
	List(ctx context.Context, filter Filter) ([]Prediction, error)
	GetByID(ctx context.Context, id string) (*Prediction, error)
	UpdateResult(ctx context.Context, id string, status string, homeScore, awayScore *int) error
	Delete(ctx context.Context, id string) error
}
