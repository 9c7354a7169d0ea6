package commands

import (
	"context"
	"log/slog"
	"time"

	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/pkg/clock"

	"github.com/google/uuid"
)

// Stager is where validated jobs go. In production this is the dispatch
// scheduler's queue.
type Stager interface {
	Enqueue(job *purchase.Job)
}

type StageJobRequest struct {
	UserID             uuid.UUID
	ProductID          uuid.UUID
	RetailerSlug       string
	Qty                int
	RuleID             *uuid.UUID
	MaxPrice           *float64
	MSRP               *float64
	Region             *string
	SessionFingerprint *string
	AlertAt            *time.Time
}

type StageJobResult struct {
	IdempotencyKey string
}

type PurchaseCommands interface {
	StageJob(ctx context.Context, req StageJobRequest) (*StageJobResult, error)
}

type purchaseCommandsImpl struct {
	stager Stager
	clock  clock.Clock
	logger *slog.Logger
}

func NewPurchaseCommands(stager Stager, clk clock.Clock, logger *slog.Logger) PurchaseCommands {
	return &purchaseCommandsImpl{stager: stager, clock: clk, logger: logger}
}

// StageJob validates a manually submitted job and places it on the dispatch
// queue. AlertAt defaults to now: a manual staging IS the alert.
func (uc *purchaseCommandsImpl) StageJob(_ context.Context, req StageJobRequest) (*StageJobResult, error) {
	job, err := purchase.NewJob(req.UserID, req.ProductID, req.RetailerSlug, req.Qty)
	if err != nil {
		return nil, err
	}
	job.RuleID = req.RuleID
	job.MaxPrice = req.MaxPrice
	job.MSRP = req.MSRP
	job.Region = req.Region
	job.SessionFingerprint = req.SessionFingerprint

	job.AlertAt = req.AlertAt
	if job.AlertAt == nil {
		now := uc.clock.Now()
		job.AlertAt = &now
	}

	uc.stager.Enqueue(job)
	uc.logger.Info("purchase job staged manually",
		"product_id", job.ProductID, "retailer", job.RetailerSlug, "qty", job.Qty)
	return &StageJobResult{IdempotencyKey: job.IdempotencyKey()}, nil
}
