//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/usecase/queries"
)

type fakeReader struct {
	limit   int
	records []purchase.TransactionRecord
}

func (f *fakeReader) RecentTransactions(_ context.Context, limit int) ([]purchase.TransactionRecord, error) {
	f.limit = limit
	return f.records, nil
}

func TestTransactionQueries_Recent(t *testing.T) {
	price := 449.99
	leadTime := int64(4500)
	reason := "out of stock"
	now := time.Now().UTC()

	reader := &fakeReader{records: []purchase.TransactionRecord{
		{
			ID:           uuid.New(),
			ProductID:    uuid.New(),
			RetailerSlug: "best-buy",
			UserIDHash:   "abc",
			Qty:          1,
			Status:       purchase.StatusPurchased,
			PricePaid:    &price,
			LeadTimeMS:   &leadTime,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:            uuid.New(),
			ProductID:     uuid.New(),
			RetailerSlug:  "target",
			UserIDHash:    "def",
			Qty:           2,
			Status:        purchase.StatusFailed,
			FailureReason: &reason,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}}
	q := queries.NewTransactionQueries(reader)

	views, err := q.Recent(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 10, reader.limit)

	assert.Equal(t, reader.records[0].ID, views[0].ID)
	assert.Equal(t, purchase.StatusPurchased, views[0].Status)
	require.NotNil(t, views[0].PricePaid)
	assert.Equal(t, price, *views[0].PricePaid)
	require.NotNil(t, views[0].LeadTimeMS)
	assert.Equal(t, leadTime, *views[0].LeadTimeMS)

	assert.Equal(t, purchase.StatusFailed, views[1].Status)
	require.NotNil(t, views[1].FailureReason)
	assert.Equal(t, reason, *views[1].FailureReason)
}

func TestTransactionQueries_Recent_DefaultsLimit(t *testing.T) {
	reader := &fakeReader{}
	q := queries.NewTransactionQueries(reader)

	_, err := q.Recent(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, queries.DefaultRecentLimit, reader.limit)
}
