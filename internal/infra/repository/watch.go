package repository

import (
	"context"

	"restock-sentinel/internal/infra"
	"restock-sentinel/internal/watcher"

	"github.com/google/uuid"
)

type WatchRepository struct {
	db DBTX
}

func NewWatchRepository(db DBTX) *WatchRepository {
	return &WatchRepository{db: db}
}

const activeAutoPurchasesSQL = `
SELECT id, user_id, product_id, retailer_ids,
       COALESCE(auto_purchase_qty, 1),
       COALESCE(auto_purchase_max_price, max_price)
FROM watches
WHERE active AND auto_purchase_enabled`

func (r *WatchRepository) ActiveAutoPurchases(ctx context.Context) ([]watcher.Watch, error) {
	rows, err := r.db.Query(ctx, activeAutoPurchasesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list auto-purchase watches", err)
	}
	defer rows.Close()

	var out []watcher.Watch
	for rows.Next() {
		var w watcher.Watch
		if err := rows.Scan(&w.ID, &w.UserID, &w.ProductID, &w.RetailerIDs, &w.Qty, &w.MaxPrice); err != nil {
			return nil, infra.WrapRepoErr("failed to scan watch row", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read watch rows", err)
	}
	return out, nil
}

type RetailerRepository struct {
	db DBTX
}

func NewRetailerRepository(db DBTX) *RetailerRepository {
	return &RetailerRepository{db: db}
}

const retailerSlugsSQL = `SELECT id, slug FROM retailers`

func (r *RetailerRepository) Slugs(ctx context.Context) (map[uuid.UUID]string, error) {
	rows, err := r.db.Query(ctx, retailerSlugsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list retailers", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]string)
	for rows.Next() {
		var id uuid.UUID
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, infra.WrapRepoErr("failed to scan retailer row", err)
		}
		out[id] = slug
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read retailer rows", err)
	}
	return out, nil
}
