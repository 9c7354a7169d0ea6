package queries

import (
	"context"
	"time"

	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const DefaultRecentLimit = 50

type TransactionView struct {
	ID                 uuid.UUID                  `json:"id"`
	ProductID          uuid.UUID                  `json:"product_id"`
	RetailerSlug       string                     `json:"retailer_slug"`
	UserIDHash         string                     `json:"user_id_hash"`
	RuleID             *uuid.UUID                 `json:"rule_id"`
	Qty                int                        `json:"qty"`
	MSRP               *float64                   `json:"msrp"`
	Region             *string                    `json:"region"`
	SessionFingerprint *string                    `json:"session_fingerprint"`
	Status             purchase.TransactionStatus `json:"status"`
	PricePaid          *float64                   `json:"price_paid"`
	AlertAt            *time.Time                 `json:"alert_at"`
	AddedToCartAt      *time.Time                 `json:"added_to_cart_at"`
	PurchasedAt        *time.Time                 `json:"purchased_at"`
	FailureReason      *string                    `json:"failure_reason"`
	LeadTimeMS         *int64                     `json:"lead_time_ms"`
	CreatedAt          time.Time                  `json:"created_at"`
	UpdatedAt          time.Time                  `json:"updated_at"`
}

// TransactionReader is the ledger read surface; the ledger clamps the limit
// before hitting storage.
type TransactionReader interface {
	RecentTransactions(ctx context.Context, limit int) ([]purchase.TransactionRecord, error)
}

type TransactionQueries interface {
	Recent(ctx context.Context, limit int) ([]*TransactionView, error)
}

type transactionQueriesImpl struct {
	reader TransactionReader
}

func NewTransactionQueries(reader TransactionReader) TransactionQueries {
	return &transactionQueriesImpl{reader: reader}
}

func (q *transactionQueriesImpl) Recent(ctx context.Context, limit int) ([]*TransactionView, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	records, err := q.reader.RecentTransactions(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]*TransactionView, 0, len(records))
	for i := range records {
		var view TransactionView
		if err := copier.Copy(&view, &records[i]); err != nil {
			return nil, errs.Wrap(err, "failed to map transaction record")
		}
		views = append(views, &view)
	}
	return views, nil
}
