package components

import (
	"log/slog"

	"restock-sentinel/internal/checkout"
	"restock-sentinel/internal/dispatch"
	"restock-sentinel/internal/fetch"
	"restock-sentinel/internal/pkg/clock"
	"restock-sentinel/internal/pkg/config"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewFetchGateway,
		fx.Annotate(
			NewCheckoutExecutor,
			fx.As(new(dispatch.CheckoutExecutor)),
		),
	),
)

func NewFetchGateway(cfg config.Config, clk clock.Clock, logger *slog.Logger) *fetch.Gateway {
	return fetch.NewGateway(cfg.Fetch, clk, logger)
}

func NewCheckoutExecutor(cfg config.Config, gw *fetch.Gateway, clk clock.Clock, logger *slog.Logger) *checkout.HTTPExecutor {
	return checkout.NewHTTPExecutor(gw, cfg.Checkout.EndpointTemplate, clk, logger)
}
