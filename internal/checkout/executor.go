// Package checkout drives the external cart/checkout API for a retailer.
// The dispatch executor only sees the CheckoutExecutor interface; everything
// retailer-facing lives behind it.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"restock-sentinel/internal/dispatch"
	"restock-sentinel/internal/fetch"
	"restock-sentinel/internal/pkg/clock"
	"restock-sentinel/internal/pkg/errs"
)

// Poster is the slice of the fetch gateway checkout needs.
type Poster interface {
	Post(ctx context.Context, target string, body []byte, opts fetch.Options) (*fetch.Result, error)
}

type orderRequest struct {
	ProductID          string   `json:"product_id"`
	Qty                int      `json:"qty"`
	MaxPrice           *float64 `json:"max_price,omitempty"`
	SessionFingerprint *string  `json:"session_fingerprint,omitempty"`
	UserRef            string   `json:"user_ref"`
}

type orderResponse struct {
	Status        string     `json:"status"`
	PricePaid     *float64   `json:"price_paid"`
	AddedToCartAt *time.Time `json:"added_to_cart_at"`
	PurchasedAt   *time.Time `json:"purchased_at"`
	Reason        *string    `json:"reason"`
}

// HTTPExecutor posts orders to a per-retailer checkout endpoint resolved
// from a template ("https://checkout.internal/%s/orders"). An empty template
// means no checkout backend is wired up; jobs then fail cleanly instead of
// erroring.
type HTTPExecutor struct {
	poster           Poster
	endpointTemplate string
	clock            clock.Clock
	logger           *slog.Logger
}

func NewHTTPExecutor(poster Poster, endpointTemplate string, clk clock.Clock, logger *slog.Logger) *HTTPExecutor {
	return &HTTPExecutor{
		poster:           poster,
		endpointTemplate: endpointTemplate,
		clock:            clk,
		logger:           logger,
	}
}

func (e *HTTPExecutor) ExecuteCheckout(ctx context.Context, req dispatch.CheckoutRequest) (*dispatch.CheckoutResult, error) {
	if e.endpointTemplate == "" {
		reason := "checkout endpoint not configured"
		return &dispatch.CheckoutResult{Success: false, FailureReason: &reason}, nil
	}

	body, err := json.Marshal(orderRequest{
		ProductID:          req.ProductID.String(),
		Qty:                req.Qty,
		MaxPrice:           req.MaxPrice,
		SessionFingerprint: req.SessionFingerprint,
		UserRef:            req.UserID.String(),
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode order request")
	}

	endpoint := fmt.Sprintf(e.endpointTemplate, req.RetailerSlug)
	res, err := e.poster.Post(ctx, endpoint, body, fetch.Options{Retailer: req.RetailerSlug})
	if err != nil {
		return nil, errs.Wrap(err, "checkout request failed")
	}

	if res.Blocked() {
		reason := fmt.Sprintf("blocked by retailer (status %d)", res.Status)
		return &dispatch.CheckoutResult{Success: false, FailureReason: &reason}, nil
	}
	if res.Status < 200 || res.Status > 299 {
		reason := fmt.Sprintf("checkout endpoint returned status %d", res.Status)
		return &dispatch.CheckoutResult{Success: false, FailureReason: &reason}, nil
	}

	var order orderResponse
	if err := json.Unmarshal(res.Body, &order); err != nil {
		return nil, errs.Wrap(err, "failed to decode order response")
	}

	result := &dispatch.CheckoutResult{
		PricePaid:     order.PricePaid,
		AddedToCartAt: order.AddedToCartAt,
		PurchasedAt:   order.PurchasedAt,
		FailureReason: order.Reason,
	}
	switch order.Status {
	case "purchased":
		result.Success = true
		if result.PurchasedAt == nil {
			now := e.clock.Now().UTC()
			result.PurchasedAt = &now
		}
	case "carted":
		// Carted without purchase confirmation is still a failure for the
		// ledger; the cart contents are not ours until the order confirms.
		if result.FailureReason == nil {
			reason := "carted but purchase unconfirmed"
			result.FailureReason = &reason
		}
	default:
		if result.FailureReason == nil && order.Status != "" {
			reason := "checkout status " + order.Status
			result.FailureReason = &reason
		}
	}
	return result, nil
}
