package repository

import (
	"context"

	"restock-sentinel/internal/infra"

	"github.com/google/uuid"
)

// WeightRepository resolves per-user dispatch priority from the plan table.
type WeightRepository struct {
	db DBTX
}

func NewWeightRepository(db DBTX) *WeightRepository {
	return &WeightRepository{db: db}
}

const userWeightSQL = `
SELECT priority_weight FROM user_plans WHERE user_id = $1`

func (r *WeightRepository) Weight(ctx context.Context, userID uuid.UUID) (float64, error) {
	var weight float64
	if err := r.db.QueryRow(ctx, userWeightSQL, userID).Scan(&weight); err != nil {
		return 0, infra.WrapRepoErr("failed to resolve priority weight", err)
	}
	return weight, nil
}
