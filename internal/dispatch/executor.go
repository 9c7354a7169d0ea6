package dispatch

import (
	"context"
	"log/slog"
	"time"

	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/ledger"
	"restock-sentinel/internal/pkg/clock"

	"github.com/google/uuid"
)

// idempotencyTTL bounds how long a signature stays exclusive. Deliberately
// not configurable: shortening it silently re-enables duplicate purchases.
const idempotencyTTL = 300 * time.Second

const defaultFailureReason = "checkout failed"

type Locker interface {
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}

type CheckoutRequest struct {
	UserID             uuid.UUID
	ProductID          uuid.UUID
	RetailerSlug       string
	Qty                int
	MaxPrice           *float64
	SessionFingerprint *string
}

type CheckoutResult struct {
	Success       bool
	PricePaid     *float64
	AddedToCartAt *time.Time
	PurchasedAt   *time.Time
	FailureReason *string
}

type CheckoutExecutor interface {
	ExecuteCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
}

type Recorder interface {
	RecordAttempt(ctx context.Context, job *purchase.Job, userIDHash string) (*purchase.TransactionRecord, error)
	RecordSuccess(ctx context.Context, job *purchase.Job, userIDHash string, outcome ledger.Outcome) (*purchase.TransactionRecord, error)
	RecordFailure(ctx context.Context, job *purchase.Job, userIDHash string, reason string) (*purchase.TransactionRecord, error)
}

// Executor runs one purchase attempt end to end: idempotency lock, attempt
// row, checkout call, terminal row. It never propagates an error upward; the
// dispatch loop must survive any single job.
type Executor struct {
	locker     Locker
	checkout   CheckoutExecutor
	recorder   Recorder
	hashSecret string
	clock      clock.Clock
	logger     *slog.Logger
}

func NewExecutor(
	locker Locker,
	checkout CheckoutExecutor,
	recorder Recorder,
	hashSecret string,
	clk clock.Clock,
	logger *slog.Logger,
) *Executor {
	return &Executor{
		locker:     locker,
		checkout:   checkout,
		recorder:   recorder,
		hashSecret: hashSecret,
		clock:      clk,
		logger:     logger,
	}
}

func (e *Executor) ExecutePurchase(ctx context.Context, job *purchase.Job) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("purchase execution panicked",
				"product_id", job.ProductID, "retailer", job.RetailerSlug, "panic", r)
		}
	}()

	userIDHash := purchase.PseudonymousUserID(e.hashSecret, job.UserID)
	key := job.IdempotencyKey()

	acquired, err := e.locker.SetNX(ctx, key, []byte(e.clock.Now().UTC().Format(time.RFC3339Nano)), idempotencyTTL)
	if err != nil {
		e.logger.Error("idempotency lock unavailable, dropping job", "key", key, "error", err)
		return
	}
	if !acquired {
		// Another attempt with this signature already ran within the TTL.
		// No transaction row is written for a deduped job.
		e.logger.Warn("duplicate purchase job deduplicated", "key", key)
		return
	}

	if _, err := e.recorder.RecordAttempt(ctx, job, userIDHash); err != nil {
		e.logger.Error("failed to record purchase attempt", "key", key, "error", err)
		return
	}

	result, err := e.checkout.ExecuteCheckout(ctx, CheckoutRequest{
		UserID:             job.UserID,
		ProductID:          job.ProductID,
		RetailerSlug:       job.RetailerSlug,
		Qty:                job.Qty,
		MaxPrice:           job.MaxPrice,
		SessionFingerprint: job.SessionFingerprint,
	})
	if err != nil {
		e.recordFailure(ctx, job, userIDHash, err.Error())
		return
	}

	if !result.Success {
		reason := defaultFailureReason
		if result.FailureReason != nil && *result.FailureReason != "" {
			reason = *result.FailureReason
		}
		e.recordFailure(ctx, job, userIDHash, reason)
		return
	}

	rec, err := e.recorder.RecordSuccess(ctx, job, userIDHash, ledger.Outcome{
		PricePaid:     result.PricePaid,
		AddedToCartAt: result.AddedToCartAt,
		PurchasedAt:   result.PurchasedAt,
	})
	if err != nil {
		e.logger.Error("failed to record purchase success", "key", key, "error", err)
		return
	}
	e.logger.Info("purchase completed",
		"product_id", job.ProductID,
		"retailer", job.RetailerSlug,
		"price_paid", rec.PricePaid,
		"lead_time_ms", rec.LeadTimeMS,
	)
}

// Checkout failures are terminal for this job instance. Retries only happen
// indirectly, via the watcher re-staging as the window approaches.
func (e *Executor) recordFailure(ctx context.Context, job *purchase.Job, userIDHash, reason string) {
	if reason == "" {
		reason = defaultFailureReason
	}
	if _, err := e.recorder.RecordFailure(ctx, job, userIDHash, reason); err != nil {
		e.logger.Error("failed to record purchase failure",
			"product_id", job.ProductID, "retailer", job.RetailerSlug, "error", err)
	}
}
