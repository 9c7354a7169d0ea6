package purchase

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	StatusAttempted TransactionStatus = "attempted"
	StatusCarted    TransactionStatus = "carted"
	StatusPurchased TransactionStatus = "purchased"
	StatusFailed    TransactionStatus = "failed"
)

// TransactionRecord is one append-only lifecycle row. Rows are never mutated
// or deleted; a purchase attempt produces an attempted row followed by at
// most one terminal row.
type TransactionRecord struct {
	ID                 uuid.UUID
	ProductID          uuid.UUID
	RetailerSlug       string
	UserIDHash         string
	RuleID             *uuid.UUID
	Qty                int
	MSRP               *float64
	Region             *string
	SessionFingerprint *string
	Status             TransactionStatus
	PricePaid          *float64
	AlertAt            *time.Time
	AddedToCartAt      *time.Time
	PurchasedAt        *time.Time
	FailureReason      *string
	LeadTimeMS         *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LeadTimeMS is the elapsed milliseconds between the alert that staged the
// attempt and the completed purchase. Only meaningful on success; nil when
// either timestamp is missing.
func LeadTimeMS(alertAt, purchasedAt *time.Time) *int64 {
	if alertAt == nil || purchasedAt == nil {
		return nil
	}
	ms := purchasedAt.Sub(*alertAt).Milliseconds()
	return &ms
}

// ResolvePricePaid picks the price recorded on a successful purchase:
// checkout-reported price, then the job's max price, then MSRP, then zero.
func ResolvePricePaid(reported, maxPrice, msrp *float64) float64 {
	switch {
	case reported != nil:
		return *reported
	case maxPrice != nil:
		return *maxPrice
	case msrp != nil:
		return *msrp
	default:
		return 0
	}
}
