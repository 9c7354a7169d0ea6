//go:build unit

package checkout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock-sentinel/internal/checkout"
	"restock-sentinel/internal/dispatch"
	"restock-sentinel/internal/fetch"
	"restock-sentinel/internal/pkg/clock"
	"restock-sentinel/internal/pkg/logger"
)

type fakePoster struct {
	lastTarget string
	lastBody   []byte
	result     *fetch.Result
	err        error
}

func (p *fakePoster) Post(_ context.Context, target string, body []byte, _ fetch.Options) (*fetch.Result, error) {
	p.lastTarget = target
	p.lastBody = body
	return p.result, p.err
}

func newExecutor(p *fakePoster, template string) *checkout.HTTPExecutor {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return checkout.NewHTTPExecutor(p, template, clk, logger.NewDiscard())
}

func TestHTTPExecutor_ExecuteCheckout(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	price := 499.99

	baseReq := dispatch.CheckoutRequest{
		UserID:       userID,
		ProductID:    productID,
		RetailerSlug: "best-buy",
		Qty:          2,
		MaxPrice:     &price,
	}

	t.Run("purchased order maps to success", func(t *testing.T) {
		purchasedAt := time.Date(2025, 6, 1, 12, 0, 3, 0, time.UTC)
		body, _ := json.Marshal(map[string]any{
			"status":       "purchased",
			"price_paid":   449.99,
			"purchased_at": purchasedAt,
		})
		poster := &fakePoster{result: &fetch.Result{Body: body, Status: http.StatusOK}}

		result, err := newExecutor(poster, "https://checkout.internal/%s/orders").ExecuteCheckout(context.Background(), baseReq)

		require.NoError(t, err)
		assert.True(t, result.Success)
		require.NotNil(t, result.PricePaid)
		assert.Equal(t, 449.99, *result.PricePaid)
		require.NotNil(t, result.PurchasedAt)
		assert.Equal(t, purchasedAt, result.PurchasedAt.UTC())
		assert.Equal(t, "https://checkout.internal/best-buy/orders", poster.lastTarget)

		var sent map[string]any
		require.NoError(t, json.Unmarshal(poster.lastBody, &sent))
		assert.Equal(t, productID.String(), sent["product_id"])
		assert.Equal(t, float64(2), sent["qty"])
	})

	t.Run("purchased without timestamp defaults to clock now", func(t *testing.T) {
		poster := &fakePoster{result: &fetch.Result{Body: []byte(`{"status":"purchased"}`), Status: http.StatusOK}}

		result, err := newExecutor(poster, "https://checkout.internal/%s/orders").ExecuteCheckout(context.Background(), baseReq)

		require.NoError(t, err)
		assert.True(t, result.Success)
		require.NotNil(t, result.PurchasedAt)
		assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), *result.PurchasedAt)
	})

	t.Run("carted is not success", func(t *testing.T) {
		poster := &fakePoster{result: &fetch.Result{Body: []byte(`{"status":"carted"}`), Status: http.StatusOK}}

		result, err := newExecutor(poster, "https://checkout.internal/%s/orders").ExecuteCheckout(context.Background(), baseReq)

		require.NoError(t, err)
		assert.False(t, result.Success)
		require.NotNil(t, result.FailureReason)
		assert.Equal(t, "carted but purchase unconfirmed", *result.FailureReason)
	})

	t.Run("blocking status becomes failure result", func(t *testing.T) {
		poster := &fakePoster{result: &fetch.Result{Body: []byte("denied"), Status: http.StatusTooManyRequests}}

		result, err := newExecutor(poster, "https://checkout.internal/%s/orders").ExecuteCheckout(context.Background(), baseReq)

		require.NoError(t, err)
		assert.False(t, result.Success)
		require.NotNil(t, result.FailureReason)
		assert.Equal(t, "blocked by retailer (status 429)", *result.FailureReason)
	})

	t.Run("missing template fails cleanly without posting", func(t *testing.T) {
		poster := &fakePoster{}

		result, err := newExecutor(poster, "").ExecuteCheckout(context.Background(), baseReq)

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Empty(t, poster.lastTarget)
		require.NotNil(t, result.FailureReason)
		assert.Equal(t, "checkout endpoint not configured", *result.FailureReason)
	})

	t.Run("transport error propagates", func(t *testing.T) {
		poster := &fakePoster{err: context.DeadlineExceeded}

		result, err := newExecutor(poster, "https://checkout.internal/%s/orders").ExecuteCheckout(context.Background(), baseReq)

		require.Error(t, err)
		assert.Nil(t, result)
	})
}
