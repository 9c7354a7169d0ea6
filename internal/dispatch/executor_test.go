//go:build unit

package dispatch_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"restock-sentinel/internal/dispatch"
	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/ledger"
	"restock-sentinel/internal/pkg/clock"
	"restock-sentinel/internal/pkg/errs"
	"restock-sentinel/internal/pkg/logger"
	"restock-sentinel/tests/common/builder"
	dispatchmock "restock-sentinel/tests/mock/dispatch"
)

const testHashSecret = "executor-test-secret"

type executorFixture struct {
	executor *dispatch.Executor
	locker   *dispatchmock.MockLocker
	checkout *dispatchmock.MockCheckoutExecutor
	recorder *dispatchmock.MockRecorder
}

func newExecutorFixture(t *testing.T) *executorFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	locker := dispatchmock.NewMockLocker(ctrl)
	checkout := dispatchmock.NewMockCheckoutExecutor(ctrl)
	recorder := dispatchmock.NewMockRecorder(ctrl)
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return &executorFixture{
		executor: dispatch.NewExecutor(locker, checkout, recorder, testHashSecret, clk, logger.NewDiscard()),
		locker:   locker,
		checkout: checkout,
		recorder: recorder,
	}
}

func TestExecutor_ExecutePurchase_SuccessFlow(t *testing.T) {
	f := newExecutorFixture(t)
	job := builder.NewJobBuilder().Build()
	expectedHash := purchase.PseudonymousUserID(testHashSecret, job.UserID)
	price := 449.99
	purchasedAt := time.Date(2025, 6, 1, 12, 0, 4, 500000000, time.UTC)

	f.locker.EXPECT().
		SetNX(gomock.Any(), job.IdempotencyKey(), gomock.Any(), 300*time.Second).
		Return(true, nil)
	f.recorder.EXPECT().
		RecordAttempt(gomock.Any(), job, expectedHash).
		Return(&purchase.TransactionRecord{Status: purchase.StatusAttempted}, nil)
	f.checkout.EXPECT().
		ExecuteCheckout(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dispatch.CheckoutRequest) (*dispatch.CheckoutResult, error) {
			assert.Equal(t, job.UserID, req.UserID)
			assert.Equal(t, job.ProductID, req.ProductID)
			assert.Equal(t, job.RetailerSlug, req.RetailerSlug)
			assert.Equal(t, job.Qty, req.Qty)
			return &dispatch.CheckoutResult{Success: true, PricePaid: &price, PurchasedAt: &purchasedAt}, nil
		})
	f.recorder.EXPECT().
		RecordSuccess(gomock.Any(), job, expectedHash, ledger.Outcome{PricePaid: &price, PurchasedAt: &purchasedAt}).
		Return(&purchase.TransactionRecord{Status: purchase.StatusPurchased, PricePaid: &price}, nil)

	f.executor.ExecutePurchase(context.Background(), job)
}

func TestExecutor_ExecutePurchase_DuplicateJobWritesNothing(t *testing.T) {
	f := newExecutorFixture(t)
	job := builder.NewJobBuilder().Build()

	// Second attempt with the same signature: lock held, no rows written.
	f.locker.EXPECT().
		SetNX(gomock.Any(), job.IdempotencyKey(), gomock.Any(), 300*time.Second).
		Return(false, nil)

	f.executor.ExecutePurchase(context.Background(), job)
}

func TestExecutor_ExecutePurchase_LockErrorDropsJob(t *testing.T) {
	f := newExecutorFixture(t)
	job := builder.NewJobBuilder().Build()

	f.locker.EXPECT().
		SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, errs.New("kv unavailable"))

	f.executor.ExecutePurchase(context.Background(), job)
}

func TestExecutor_ExecutePurchase_AttemptRecordFailureSkipsCheckout(t *testing.T) {
	f := newExecutorFixture(t)
	job := builder.NewJobBuilder().Build()

	f.locker.EXPECT().
		SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil)
	f.recorder.EXPECT().
		RecordAttempt(gomock.Any(), job, gomock.Any()).
		Return(nil, errs.New("insert failed"))

	f.executor.ExecutePurchase(context.Background(), job)
}

func TestExecutor_ExecutePurchase_CheckoutErrorRecordsFailure(t *testing.T) {
	f := newExecutorFixture(t)
	job := builder.NewJobBuilder().Build()

	f.locker.EXPECT().
		SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil)
	f.recorder.EXPECT().
		RecordAttempt(gomock.Any(), job, gomock.Any()).
		Return(&purchase.TransactionRecord{}, nil)
	f.checkout.EXPECT().
		ExecuteCheckout(gomock.Any(), gomock.Any()).
		Return(nil, errs.New("connection reset"))
	f.recorder.EXPECT().
		RecordFailure(gomock.Any(), job, gomock.Any(), "connection reset").
		Return(&purchase.TransactionRecord{Status: purchase.StatusFailed}, nil)

	f.executor.ExecutePurchase(context.Background(), job)
}

func TestExecutor_ExecutePurchase_UnsuccessfulCheckoutUsesReasonFallback(t *testing.T) {
	tests := []struct {
		name           string
		failureReason  *string
		expectedReason string
	}{
		{name: "nil reason falls back", failureReason: nil, expectedReason: "checkout failed"},
		{name: "empty reason falls back", failureReason: strPtr(""), expectedReason: "checkout failed"},
		{name: "explicit reason kept", failureReason: strPtr("out of stock"), expectedReason: "out of stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newExecutorFixture(t)
			job := builder.NewJobBuilder().Build()

			f.locker.EXPECT().
				SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(true, nil)
			f.recorder.EXPECT().
				RecordAttempt(gomock.Any(), job, gomock.Any()).
				Return(&purchase.TransactionRecord{}, nil)
			f.checkout.EXPECT().
				ExecuteCheckout(gomock.Any(), gomock.Any()).
				Return(&dispatch.CheckoutResult{Success: false, FailureReason: tt.failureReason}, nil)
			f.recorder.EXPECT().
				RecordFailure(gomock.Any(), job, gomock.Any(), tt.expectedReason).
				Return(&purchase.TransactionRecord{Status: purchase.StatusFailed}, nil)

			f.executor.ExecutePurchase(context.Background(), job)
		})
	}
}

func strPtr(s string) *string { return &s }
