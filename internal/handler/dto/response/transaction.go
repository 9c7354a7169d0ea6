package response

import (
	"restock-sentinel/internal/usecase/queries"
)

type TransactionResponse struct {
	ID                 string   `json:"id"`
	ProductID          string   `json:"product_id"`
	RetailerSlug       string   `json:"retailer_slug"`
	UserIDHash         string   `json:"user_id_hash"`
	RuleID             *string  `json:"rule_id,omitempty"`
	Qty                int      `json:"qty"`
	Status             string   `json:"status"`
	PricePaid          *float64 `json:"price_paid,omitempty"`
	Region             *string  `json:"region,omitempty"`
	AlertAt            *int64   `json:"alert_at,omitempty"`
	AddedToCartAt      *int64   `json:"added_to_cart_at,omitempty"`
	PurchasedAt        *int64   `json:"purchased_at,omitempty"`
	FailureReason      *string  `json:"failure_reason,omitempty"`
	LeadTimeMS         *int64   `json:"lead_time_ms,omitempty"`
	CreatedAt          int64    `json:"created_at"`
	SessionFingerprint *string  `json:"session_fingerprint,omitempty"`
}

func FromTransactionView(v *queries.TransactionView) *TransactionResponse {
	resp := &TransactionResponse{
		ID:                 v.ID.String(),
		ProductID:          v.ProductID.String(),
		RetailerSlug:       v.RetailerSlug,
		UserIDHash:         v.UserIDHash,
		Qty:                v.Qty,
		Status:             string(v.Status),
		PricePaid:          v.PricePaid,
		Region:             v.Region,
		FailureReason:      v.FailureReason,
		LeadTimeMS:         v.LeadTimeMS,
		CreatedAt:          v.CreatedAt.Unix(),
		SessionFingerprint: v.SessionFingerprint,
	}
	if v.RuleID != nil {
		id := v.RuleID.String()
		resp.RuleID = &id
	}
	if v.AlertAt != nil {
		ts := v.AlertAt.UnixMilli()
		resp.AlertAt = &ts
	}
	if v.AddedToCartAt != nil {
		ts := v.AddedToCartAt.UnixMilli()
		resp.AddedToCartAt = &ts
	}
	if v.PurchasedAt != nil {
		ts := v.PurchasedAt.UnixMilli()
		resp.PurchasedAt = &ts
	}
	return resp
}

func FromTransactionList(views []*queries.TransactionView) []*TransactionResponse {
	res := make([]*TransactionResponse, len(views))
	for i, v := range views {
		res[i] = FromTransactionView(v)
	}
	return res
}
