package request

import (
	"time"

	"restock-sentinel/internal/usecase/commands"

	"github.com/google/uuid"
)

type StageJobRequest struct {
	UserID             uuid.UUID  `json:"user_id" binding:"required"`
	ProductID          uuid.UUID  `json:"product_id" binding:"required"`
	RetailerSlug       string     `json:"retailer_slug" binding:"required"`
	Qty                int        `json:"qty" binding:"omitempty,min=0"`
	RuleID             *uuid.UUID `json:"rule_id"`
	MaxPrice           *float64   `json:"max_price" binding:"omitempty,gt=0"`
	MSRP               *float64   `json:"msrp" binding:"omitempty,gt=0"`
	Region             *string    `json:"region"`
	SessionFingerprint *string    `json:"session_fingerprint"`
	AlertAt            *time.Time `json:"alert_at"`
}

func (r *StageJobRequest) ToCommand() commands.StageJobRequest {
	qty := r.Qty
	if qty == 0 && r.AlertAt == nil {
		// A bare manual request means one unit; qty 0 is reserved for
		// warm-up attempts staged with an explicit alert time.
		qty = 1
	}
	return commands.StageJobRequest{
		UserID:             r.UserID,
		ProductID:          r.ProductID,
		RetailerSlug:       r.RetailerSlug,
		Qty:                qty,
		RuleID:             r.RuleID,
		MaxPrice:           r.MaxPrice,
		MSRP:               r.MSRP,
		Region:             r.Region,
		SessionFingerprint: r.SessionFingerprint,
		AlertAt:            r.AlertAt,
	}
}
