package purchase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"restock-sentinel/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidQty      = errs.New("quantity must not be negative")
	ErrMissingRetailer = errs.New("retailer slug is required")
)

// Job is a staged purchase attempt. Jobs live only in the in-process queue;
// they are consumed exactly once by the dispatcher and never persisted.
type Job struct {
	UserID             uuid.UUID
	ProductID          uuid.UUID
	RetailerSlug       string
	RuleID             *uuid.UUID
	Qty                int
	MSRP               *float64
	MaxPrice           *float64
	Region             *string
	SessionFingerprint *string
	AlertAt            *time.Time
}

// NewJob validates and normalizes a staged job. Qty defaults to 1; zero is
// legal and means a warm-up attempt that must not commit to a purchase.
func NewJob(userID, productID uuid.UUID, retailerSlug string, qty int) (*Job, error) {
	if strings.TrimSpace(retailerSlug) == "" {
		return nil, ErrMissingRetailer
	}
	if qty < 0 {
		return nil, ErrInvalidQty
	}
	return &Job{
		UserID:       userID,
		ProductID:    productID,
		RetailerSlug: strings.TrimSpace(retailerSlug),
		Qty:          qty,
	}, nil
}

// IdempotencyKey derives the deterministic dedup key for this job. Two jobs
// with the same signature map to the same key and at most one of them may
// execute while the lock is live.
func (j *Job) IdempotencyKey() string {
	parts := []string{
		"autobuy",
		j.UserID.String(),
		j.ProductID.String(),
		j.RetailerSlug,
		uuidPtrPart(j.RuleID),
		strconv.Itoa(j.Qty),
		floatPtrPart(j.MaxPrice),
	}
	return strings.Join(parts, ":")
}

func uuidPtrPart(id *uuid.UUID) string {
	if id == nil {
		return "-"
	}
	return id.String()
}

func floatPtrPart(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// PseudonymousUserID produces the analytics identifier recorded on ledger
// rows. Keyed hashing keeps it irreversible without the secret.
func PseudonymousUserID(secret string, userID uuid.UUID) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(userID.String()))
	return hex.EncodeToString(mac.Sum(nil))
}
