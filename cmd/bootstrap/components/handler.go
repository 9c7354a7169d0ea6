package components

import (
	"restock-sentinel/internal/dispatch"
	"restock-sentinel/internal/handler"
	"restock-sentinel/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewPurchaseHandler,
		api.NewTransactionHandler,
		func(s *dispatch.Scheduler) *api.DispatchHandler {
			return api.NewDispatchHandler(s)
		},
	),
	fx.Invoke(handler.NewRouter),
)
