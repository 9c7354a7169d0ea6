package api

import (
	"net/http"

	"restock-sentinel/internal/dispatch"
	resdto "restock-sentinel/internal/handler/dto/response"

	"github.com/gin-gonic/gin"
)

// StatsSource is the scheduler's observability surface.
type StatsSource interface {
	Stats() dispatch.Stats
}

type DispatchHandler struct {
	stats StatsSource
}

func NewDispatchHandler(stats StatsSource) *DispatchHandler {
	return &DispatchHandler{stats: stats}
}

func (h *DispatchHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromDispatchStats(h.stats.Stats()))
}
