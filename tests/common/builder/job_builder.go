//go:build unit

package builder

import (
	"time"

	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/watcher"

	"github.com/google/uuid"
)

type JobBuilder struct {
	UserID       uuid.UUID
	ProductID    uuid.UUID
	RetailerSlug string
	RuleID       *uuid.UUID
	Qty          int
	MSRP         *float64
	MaxPrice     *float64
	AlertAt      *time.Time
}

func NewJobBuilder() *JobBuilder {
	alertAt := time.Now().UTC().Truncate(time.Millisecond)
	maxPrice := 599.99
	return &JobBuilder{
		UserID:       uuid.New(),
		ProductID:    uuid.New(),
		RetailerSlug: "best-buy",
		Qty:          1,
		MaxPrice:     &maxPrice,
		AlertAt:      &alertAt,
	}
}

func (b *JobBuilder) With(mutate func(*JobBuilder)) *JobBuilder {
	mutate(b)
	return b
}

func (b *JobBuilder) Build() *purchase.Job {
	return &purchase.Job{
		UserID:       b.UserID,
		ProductID:    b.ProductID,
		RetailerSlug: b.RetailerSlug,
		RuleID:       b.RuleID,
		Qty:          b.Qty,
		MSRP:         b.MSRP,
		MaxPrice:     b.MaxPrice,
		AlertAt:      b.AlertAt,
	}
}

// BuildStageRequestMap is the JSON body for POST /api/purchase-jobs, as a
// map so tests can knock out individual fields.
func (b *JobBuilder) BuildStageRequestMap() map[string]any {
	m := map[string]any{
		"user_id":       b.UserID.String(),
		"product_id":    b.ProductID.String(),
		"retailer_slug": b.RetailerSlug,
		"qty":           b.Qty,
	}
	if b.MaxPrice != nil {
		m["max_price"] = *b.MaxPrice
	}
	return m
}

type WatchBuilder struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ProductID   uuid.UUID
	RetailerIDs []uuid.UUID
	Qty         int
	MaxPrice    *float64
}

func NewWatchBuilder() *WatchBuilder {
	maxPrice := 499.99
	return &WatchBuilder{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		ProductID:   uuid.New(),
		RetailerIDs: []uuid.UUID{uuid.New()},
		Qty:         1,
		MaxPrice:    &maxPrice,
	}
}

func (b *WatchBuilder) With(mutate func(*WatchBuilder)) *WatchBuilder {
	mutate(b)
	return b
}

func (b *WatchBuilder) Build() watcher.Watch {
	return watcher.Watch{
		ID:          b.ID,
		UserID:      b.UserID,
		ProductID:   b.ProductID,
		RetailerIDs: b.RetailerIDs,
		Qty:         b.Qty,
		MaxPrice:    b.MaxPrice,
	}
}
