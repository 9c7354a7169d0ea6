package response

import (
	"restock-sentinel/internal/usecase/commands"
)

type StageJobResponse struct {
	IdempotencyKey string `json:"idempotency_key"`
}

func FromStageJobResult(r *commands.StageJobResult) *StageJobResponse {
	return &StageJobResponse{IdempotencyKey: r.IdempotencyKey}
}
