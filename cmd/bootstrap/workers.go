package bootstrap

import (
	"context"
	"log/slog"

	"restock-sentinel/internal/dispatch"
	"restock-sentinel/internal/pkg/config"
	"restock-sentinel/internal/watcher"

	"go.uber.org/fx"
)

// WorkersModule ties the dispatch loop and the restock watcher to the fx
// lifecycle so they start after wiring and drain before the pool closes.
var WorkersModule = fx.Module("workers",
	fx.Invoke(
		StartDispatcher,
		StartWatcher,
	),
)

func StartDispatcher(lc fx.Lifecycle, scheduler *dispatch.Scheduler, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			scheduler.Start(cfg.Dispatch.PollInterval())
			return nil
		},
		OnStop: func(_ context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

func StartWatcher(lc fx.Lifecycle, w *watcher.Watcher, cfg config.Config, logger *slog.Logger) {
	var cancel context.CancelFunc
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var runCtx context.Context
			runCtx, cancel = context.WithCancel(context.Background())
			go func() {
				defer close(done)
				w.Run(runCtx, cfg.Watcher.Interval())
			}()
			logger.Info("restock watcher started", "interval", cfg.Watcher.Interval())
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cancel != nil {
				cancel()
				<-done
			}
			logger.Info("restock watcher stopped")
			return nil
		},
	})
}
