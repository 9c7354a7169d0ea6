package api

import (
	"errors"
	"net/http"

	"restock-sentinel/internal/domain/purchase"
	reqdto "restock-sentinel/internal/handler/dto/request"
	resdto "restock-sentinel/internal/handler/dto/response"
	"restock-sentinel/internal/handler/httperr"
	"restock-sentinel/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	cmds commands.PurchaseCommands
}

func NewPurchaseHandler(cmds commands.PurchaseCommands) *PurchaseHandler {
	return &PurchaseHandler{cmds: cmds}
}

// Stage accepts a manually staged purchase job and enqueues it for dispatch.
func (h *PurchaseHandler) Stage(c *gin.Context) {
	var req reqdto.StageJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.StageJob(c.Request.Context(), req.ToCommand())
	if err != nil {
		if errors.Is(err, purchase.ErrInvalidQty) || errors.Is(err, purchase.ErrMissingRetailer) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid job", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to stage job", nil)
		return
	}
	c.JSON(http.StatusAccepted, resdto.FromStageJobResult(result))
}
