// Package ledger records purchase-attempt lifecycle rows and publishes the
// matching domain events. Rows are append-only; each lifecycle transition is
// its own row.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/pkg/clock"
)

const (
	TopicPurchaseAttempt = "purchase_attempt"
	TopicPurchaseSuccess = "purchase_success"
	TopicPurchaseFailure = "purchase_failure"
)

const (
	minRecentLimit = 1
	maxRecentLimit = 200
)

type Store interface {
	Insert(ctx context.Context, rec *purchase.TransactionRecord) error
	Recent(ctx context.Context, limit int32) ([]purchase.TransactionRecord, error)
}

type EventBus interface {
	Publish(ctx context.Context, topic string, payload any) error
}

type Ledger struct {
	store  Store
	bus    EventBus
	clock  clock.Clock
	logger *slog.Logger
}

func New(store Store, bus EventBus, clk clock.Clock, logger *slog.Logger) *Ledger {
	return &Ledger{store: store, bus: bus, clock: clk, logger: logger}
}

func (l *Ledger) RecordAttempt(ctx context.Context, job *purchase.Job, userIDHash string) (*purchase.TransactionRecord, error) {
	rec := l.baseRecord(job, userIDHash)
	rec.Status = purchase.StatusAttempted
	return l.append(ctx, rec, TopicPurchaseAttempt)
}

// Outcome is the checkout result needed to close an attempt.
type Outcome struct {
	PricePaid     *float64
	AddedToCartAt *time.Time
	PurchasedAt   *time.Time
	FailureReason *string
}

func (l *Ledger) RecordSuccess(ctx context.Context, job *purchase.Job, userIDHash string, outcome Outcome) (*purchase.TransactionRecord, error) {
	rec := l.baseRecord(job, userIDHash)
	rec.Status = purchase.StatusPurchased

	price := purchase.ResolvePricePaid(outcome.PricePaid, job.MaxPrice, job.MSRP)
	rec.PricePaid = &price
	rec.AddedToCartAt = outcome.AddedToCartAt

	purchasedAt := outcome.PurchasedAt
	if purchasedAt == nil {
		now := l.clock.Now()
		purchasedAt = &now
	}
	rec.PurchasedAt = purchasedAt
	rec.LeadTimeMS = purchase.LeadTimeMS(job.AlertAt, purchasedAt)

	return l.append(ctx, rec, TopicPurchaseSuccess)
}

func (l *Ledger) RecordFailure(ctx context.Context, job *purchase.Job, userIDHash string, reason string) (*purchase.TransactionRecord, error) {
	rec := l.baseRecord(job, userIDHash)
	rec.Status = purchase.StatusFailed
	rec.FailureReason = &reason
	return l.append(ctx, rec, TopicPurchaseFailure)
}

// RecentTransactions returns the newest rows first. The limit is clamped to
// [1, 200] regardless of what the caller asked for.
func (l *Ledger) RecentTransactions(ctx context.Context, limit int) ([]purchase.TransactionRecord, error) {
	if limit < minRecentLimit {
		limit = minRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return l.store.Recent(ctx, int32(limit))
}

func (l *Ledger) baseRecord(job *purchase.Job, userIDHash string) *purchase.TransactionRecord {
	now := l.clock.Now()
	return &purchase.TransactionRecord{
		ProductID:          job.ProductID,
		RetailerSlug:       job.RetailerSlug,
		UserIDHash:         userIDHash,
		RuleID:             job.RuleID,
		Qty:                job.Qty,
		MSRP:               job.MSRP,
		Region:             job.Region,
		SessionFingerprint: job.SessionFingerprint,
		AlertAt:            job.AlertAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (l *Ledger) append(ctx context.Context, rec *purchase.TransactionRecord, topic string) (*purchase.TransactionRecord, error) {
	if err := l.store.Insert(ctx, rec); err != nil {
		return nil, err
	}
	// Event publication is best-effort: a bus failure must not undo or block
	// the recorded transaction.
	if err := l.bus.Publish(ctx, topic, rec); err != nil {
		l.logger.Warn("failed to publish ledger event", "topic", topic, "error", err)
	}
	return rec, nil
}
