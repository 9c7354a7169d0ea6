package components

import (
	"log/slog"

	"restock-sentinel/internal/dispatch"
	"restock-sentinel/internal/ledger"
	"restock-sentinel/internal/pkg/clock"
	"restock-sentinel/internal/pkg/config"
	"restock-sentinel/internal/usecase/commands"
	"restock-sentinel/internal/usecase/queries"
	"restock-sentinel/internal/watcher"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCoreModule,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

// Core purchase pipeline: ledger, executor, scheduler, watcher.
var usecaseCoreModule = fx.Module("usecase/core",
	fx.Provide(
		ledger.New,
		NewPurchaseExecutor,
		NewScheduler,
		NewWatcher,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		fx.Annotate(
			NewPurchaseCommands,
			fx.As(new(commands.PurchaseCommands)),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		fx.Annotate(
			NewTransactionQueries,
			fx.As(new(queries.TransactionQueries)),
		),
	),
)

func NewPurchaseExecutor(
	locker dispatch.Locker,
	checkoutExec dispatch.CheckoutExecutor,
	led *ledger.Ledger,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) *dispatch.Executor {
	return dispatch.NewExecutor(locker, checkoutExec, led, cfg.Security.UserHashSecret, clk, logger)
}

func NewScheduler(weights dispatch.WeightSource, executor *dispatch.Executor, clk clock.Clock, logger *slog.Logger) *dispatch.Scheduler {
	return dispatch.NewScheduler(weights, executor, clk, logger)
}

func NewWatcher(
	watches watcher.WatchSource,
	retailers watcher.RetailerDirectory,
	windows watcher.WindowSource,
	scheduler *dispatch.Scheduler,
	clk clock.Clock,
	logger *slog.Logger,
) *watcher.Watcher {
	return watcher.New(watches, retailers, windows, scheduler, clk, logger)
}

func NewPurchaseCommands(scheduler *dispatch.Scheduler, clk clock.Clock, logger *slog.Logger) commands.PurchaseCommands {
	return commands.NewPurchaseCommands(scheduler, clk, logger)
}

func NewTransactionQueries(led *ledger.Ledger) queries.TransactionQueries {
	return queries.NewTransactionQueries(led)
}
