package api

import (
	"net/http"
	"strconv"

	resdto "restock-sentinel/internal/handler/dto/response"
	"restock-sentinel/internal/handler/httperr"
	"restock-sentinel/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	q queries.TransactionQueries
}

func NewTransactionHandler(q queries.TransactionQueries) *TransactionHandler {
	return &TransactionHandler{q: q}
}

// Recent returns the newest transaction rows. The limit parameter is
// optional; out-of-range values are clamped downstream rather than rejected.
func (h *TransactionHandler) Recent(c *gin.Context) {
	limit := queries.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	views, err := h.q.Recent(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load transactions", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": resdto.FromTransactionList(views)})
}
