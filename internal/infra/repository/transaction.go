package repository

import (
	"context"

	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/infra"

	"github.com/google/uuid"
)

type TransactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const insertTransactionSQL = `
INSERT INTO purchase_transactions
	(id, product_id, retailer_slug, user_id_hash, rule_id, qty, msrp, region,
	 session_fingerprint, status, price_paid, alert_at, added_to_cart_at,
	 purchased_at, failure_reason, lead_time_ms, created_at, updated_at)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)`

// Insert appends one lifecycle row. Rows are never updated afterwards.
func (r *TransactionRepository) Insert(ctx context.Context, rec *purchase.TransactionRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, insertTransactionSQL,
		rec.ID, rec.ProductID, rec.RetailerSlug, rec.UserIDHash, rec.RuleID,
		rec.Qty, rec.MSRP, rec.Region, rec.SessionFingerprint, string(rec.Status),
		rec.PricePaid, rec.AlertAt, rec.AddedToCartAt, rec.PurchasedAt,
		rec.FailureReason, rec.LeadTimeMS, rec.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert purchase transaction", err)
	}
	return nil
}

const recentTransactionsSQL = `
SELECT id, product_id, retailer_slug, user_id_hash, rule_id, qty, msrp, region,
       session_fingerprint, status, price_paid, alert_at, added_to_cart_at,
       purchased_at, failure_reason, lead_time_ms, created_at, updated_at
FROM purchase_transactions
ORDER BY created_at DESC
LIMIT $1`

func (r *TransactionRepository) Recent(ctx context.Context, limit int32) ([]purchase.TransactionRecord, error) {
	rows, err := r.db.Query(ctx, recentTransactionsSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list recent transactions", err)
	}
	defer rows.Close()

	out := make([]purchase.TransactionRecord, 0, limit)
	for rows.Next() {
		var rec purchase.TransactionRecord
		var status string
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.RetailerSlug, &rec.UserIDHash, &rec.RuleID,
			&rec.Qty, &rec.MSRP, &rec.Region, &rec.SessionFingerprint, &status,
			&rec.PricePaid, &rec.AlertAt, &rec.AddedToCartAt, &rec.PurchasedAt,
			&rec.FailureReason, &rec.LeadTimeMS, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction row", err)
		}
		rec.Status = purchase.TransactionStatus(status)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read transaction rows", err)
	}
	return out, nil
}
