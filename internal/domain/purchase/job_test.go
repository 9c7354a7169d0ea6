//go:build unit

package purchase_test

import (
	"testing"

	"restock-sentinel/internal/domain/purchase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		job, err := purchase.NewJob(userID, productID, " best-buy ", 2)
		require.NoError(t, err)
		assert.Equal(t, "best-buy", job.RetailerSlug)
		assert.Equal(t, 2, job.Qty)
	})

	t.Run("zero quantity is a legal warm-up job", func(t *testing.T) {
		job, err := purchase.NewJob(userID, productID, "best-buy", 0)
		require.NoError(t, err)
		assert.Equal(t, 0, job.Qty)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := purchase.NewJob(userID, productID, "best-buy", -1)
		assert.ErrorIs(t, err, purchase.ErrInvalidQty)
	})

	t.Run("blank retailer rejected", func(t *testing.T) {
		_, err := purchase.NewJob(userID, productID, "  ", 1)
		assert.ErrorIs(t, err, purchase.ErrMissingRetailer)
	})
}

func TestJob_IdempotencyKey(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	ruleID := uuid.New()
	maxPrice := 129.99

	base := &purchase.Job{
		UserID:       userID,
		ProductID:    productID,
		RetailerSlug: "best-buy",
		RuleID:       &ruleID,
		Qty:          1,
		MaxPrice:     &maxPrice,
	}

	t.Run("identical signatures derive identical keys", func(t *testing.T) {
		clone := *base
		assert.Equal(t, base.IdempotencyKey(), clone.IdempotencyKey())
	})

	t.Run("every signature field participates", func(t *testing.T) {
		otherPrice := 149.99
		mutations := map[string]func(j *purchase.Job){
			"user":      func(j *purchase.Job) { j.UserID = uuid.New() },
			"product":   func(j *purchase.Job) { j.ProductID = uuid.New() },
			"retailer":  func(j *purchase.Job) { j.RetailerSlug = "target" },
			"rule":      func(j *purchase.Job) { j.RuleID = nil },
			"qty":       func(j *purchase.Job) { j.Qty = 2 },
			"max price": func(j *purchase.Job) { j.MaxPrice = &otherPrice },
		}
		for name, mutate := range mutations {
			clone := *base
			mutate(&clone)
			assert.NotEqual(t, base.IdempotencyKey(), clone.IdempotencyKey(), "field: %s", name)
		}
	})

	t.Run("non-signature fields do not participate", func(t *testing.T) {
		clone := *base
		region := "eu-west"
		clone.Region = &region
		msrp := 99.0
		clone.MSRP = &msrp
		assert.Equal(t, base.IdempotencyKey(), clone.IdempotencyKey())
	})
}

func TestPseudonymousUserID(t *testing.T) {
	userID := uuid.New()

	first := purchase.PseudonymousUserID("secret-a", userID)
	again := purchase.PseudonymousUserID("secret-a", userID)
	otherSecret := purchase.PseudonymousUserID("secret-b", userID)
	otherUser := purchase.PseudonymousUserID("secret-a", uuid.New())

	assert.Equal(t, first, again, "must be deterministic")
	assert.NotEqual(t, first, otherSecret)
	assert.NotEqual(t, first, otherUser)
	assert.NotContains(t, first, userID.String())
	assert.Len(t, first, 64)
}
