package response

import (
	"restock-sentinel/internal/dispatch"
)

type DispatchStatsResponse struct {
	QueueDepth int  `json:"queue_depth"`
	Started    bool `json:"started"`
}

func FromDispatchStats(s dispatch.Stats) *DispatchStatsResponse {
	return &DispatchStatsResponse{QueueDepth: s.QueueDepth, Started: s.Started}
}
