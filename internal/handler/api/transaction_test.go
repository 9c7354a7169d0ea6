//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"restock-sentinel/internal/dispatch"
	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/handler/api"
	"restock-sentinel/internal/handler/middleware"
	"restock-sentinel/internal/usecase/queries"
	"restock-sentinel/tests/common/httptest"
	queriesmock "restock-sentinel/tests/mock/queries"
)

type fakeStatsSource struct {
	stats dispatch.Stats
}

func (f *fakeStatsSource) Stats() dispatch.Stats { return f.stats }

type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockTransactionQueries
	statsSource *fakeStatsSource
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockTransactionQueries(s.mockCtrl)
	s.statsSource = &fakeStatsSource{}

	s.router.GET("/api/transactions/recent", api.NewTransactionHandler(s.mockQueries).Recent)
	s.router.GET("/api/dispatch/stats", api.NewDispatchHandler(s.statsSource).Stats)
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) TestRecent() {
	price := 449.99
	leadTime := int64(4500)
	view := &queries.TransactionView{
		ID:           uuid.New(),
		ProductID:    uuid.New(),
		RetailerSlug: "best-buy",
		UserIDHash:   "abc123",
		Qty:          1,
		Status:       purchase.StatusPurchased,
		PricePaid:    &price,
		LeadTimeMS:   &leadTime,
		CreatedAt:    time.Now(),
	}

	s.Run("success: returns transactions with default limit", func() {
		s.mockQueries.EXPECT().Recent(gomock.Any(), queries.DefaultRecentLimit).
			Return([]*queries.TransactionView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/transactions/recent", nil)

		s.Equal(http.StatusOK, rec.Code)
		var resp struct {
			Transactions []struct {
				ID         string   `json:"id"`
				Status     string   `json:"status"`
				PricePaid  *float64 `json:"price_paid"`
				LeadTimeMS *int64   `json:"lead_time_ms"`
			} `json:"transactions"`
		}
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Require().Len(resp.Transactions, 1)
		s.Equal(view.ID.String(), resp.Transactions[0].ID)
		s.Equal("purchased", resp.Transactions[0].Status)
		s.Equal(price, *resp.Transactions[0].PricePaid)
		s.Equal(leadTime, *resp.Transactions[0].LeadTimeMS)
	})

	s.Run("explicit limit is passed through", func() {
		s.mockQueries.EXPECT().Recent(gomock.Any(), 25).
			Return([]*queries.TransactionView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/transactions/recent?limit=25", nil)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("non-numeric limit is rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/transactions/recent?limit=lots", nil)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("query failure maps to 500", func() {
		s.mockQueries.EXPECT().Recent(gomock.Any(), gomock.Any()).
			Return(nil, errBoom).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/transactions/recent", nil)

		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

func (s *TransactionHandlerTestSuite) TestDispatchStats() {
	s.statsSource.stats = dispatch.Stats{QueueDepth: 3, Started: true}

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/dispatch/stats", nil)

	s.Equal(http.StatusOK, rec.Code)
	var resp struct {
		QueueDepth int  `json:"queue_depth"`
		Started    bool `json:"started"`
	}
	httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
	s.Equal(3, resp.QueueDepth)
	s.True(resp.Started)
}
