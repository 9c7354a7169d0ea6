//go:build unit

package purchase_test

import (
	"testing"
	"time"

	"restock-sentinel/internal/domain/purchase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadTimeMS(t *testing.T) {
	alertAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("computed from alert to purchase", func(t *testing.T) {
		purchasedAt := alertAt.Add(4500 * time.Millisecond)
		got := purchase.LeadTimeMS(&alertAt, &purchasedAt)
		require.NotNil(t, got)
		assert.Equal(t, int64(4500), *got)
	})

	t.Run("nil when alert timestamp missing", func(t *testing.T) {
		purchasedAt := alertAt.Add(time.Second)
		assert.Nil(t, purchase.LeadTimeMS(nil, &purchasedAt))
	})

	t.Run("nil when purchase timestamp missing", func(t *testing.T) {
		assert.Nil(t, purchase.LeadTimeMS(&alertAt, nil))
	})
}

func TestResolvePricePaid(t *testing.T) {
	reported := 119.99
	maxPrice := 150.0
	msrp := 129.99

	testCases := []struct {
		name     string
		reported *float64
		maxPrice *float64
		msrp     *float64
		expected float64
	}{
		{
			name:     "checkout-reported price wins",
			reported: &reported,
			maxPrice: &maxPrice,
			msrp:     &msrp,
			expected: 119.99,
		},
		{
			name:     "max price when checkout reports nothing",
			maxPrice: &maxPrice,
			msrp:     &msrp,
			expected: 150.0,
		},
		{
			name:     "msrp as last resort",
			msrp:     &msrp,
			expected: 129.99,
		},
		{
			name:     "zero when nothing known",
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, purchase.ResolvePricePaid(tc.reported, tc.maxPrice, tc.msrp))
		})
	}
}
