// Package watcher polls auto-purchase subscriptions against predicted
// restock windows and stages purchase jobs as each window approaches.
package watcher

import (
	"context"
	"log/slog"
	"time"

	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/pkg/clock"

	"github.com/google/uuid"
)

// Watch is an active subscription with auto-purchase enabled.
type Watch struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ProductID   uuid.UUID
	RetailerIDs []uuid.UUID
	Qty         int
	MaxPrice    *float64
}

type WatchSource interface {
	ActiveAutoPurchases(ctx context.Context) ([]Watch, error)
}

type RetailerDirectory interface {
	Slugs(ctx context.Context) (map[uuid.UUID]string, error)
}

// WindowSource reads hot-window announcements. A nil window with nil error
// means no prediction exists for the pair, which is the common case.
type WindowSource interface {
	HotWindow(ctx context.Context, productID uuid.UUID, retailerSlug string) (*purchase.HotWindow, error)
}

type Stager interface {
	Enqueue(job *purchase.Job)
}

type Watcher struct {
	watches   WatchSource
	retailers RetailerDirectory
	windows   WindowSource
	stager    Stager
	clock     clock.Clock
	logger    *slog.Logger
}

func New(
	watches WatchSource,
	retailers RetailerDirectory,
	windows WindowSource,
	stager Stager,
	clk clock.Clock,
	logger *slog.Logger,
) *Watcher {
	return &Watcher{
		watches:   watches,
		retailers: retailers,
		windows:   windows,
		stager:    stager,
		clock:     clk,
		logger:    logger,
	}
}

// RunOnce evaluates every (watch, retailer) pair once and returns the number
// of jobs staged. Pairs without a resolvable slug or a hot window are skipped
// silently; a failure on one pair never aborts the rest.
func (w *Watcher) RunOnce(ctx context.Context) int {
	watches, err := w.watches.ActiveAutoPurchases(ctx)
	if err != nil {
		w.logger.Error("failed to load auto-purchase watches", "error", err)
		return 0
	}
	if len(watches) == 0 {
		return 0
	}

	slugs, err := w.retailers.Slugs(ctx)
	if err != nil {
		w.logger.Error("failed to load retailer directory", "error", err)
		return 0
	}

	staged := 0
	for _, watch := range watches {
		for _, retailerID := range watch.RetailerIDs {
			slug, ok := slugs[retailerID]
			if !ok {
				continue
			}
			staged += w.stagePair(ctx, watch, slug)
		}
	}
	return staged
}

func (w *Watcher) stagePair(ctx context.Context, watch Watch, slug string) (staged int) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("watch evaluation panicked",
				"watch_id", watch.ID, "retailer", slug, "panic", r)
			staged = 0
		}
	}()

	window, err := w.windows.HotWindow(ctx, watch.ProductID, slug)
	if err != nil {
		w.logger.Warn("hot window lookup failed",
			"watch_id", watch.ID, "retailer", slug, "error", err)
		return 0
	}
	if window == nil {
		return 0
	}

	delta := window.Start.Sub(w.clock.Now())
	bucket := purchase.BucketFor(delta)
	if bucket == purchase.BucketNone {
		return 0
	}

	alertAt := window.Start
	for i := 0; i < bucket.JobCount(); i++ {
		ruleID := watch.ID
		w.stager.Enqueue(&purchase.Job{
			UserID:       watch.UserID,
			ProductID:    watch.ProductID,
			RetailerSlug: slug,
			RuleID:       &ruleID,
			Qty:          bucket.Qty(watch.Qty),
			MaxPrice:     watch.MaxPrice,
			AlertAt:      &alertAt,
		})
		staged++
	}

	w.logger.Info("staged purchase jobs",
		"watch_id", watch.ID,
		"product_id", watch.ProductID,
		"retailer", slug,
		"delta_ms", delta.Milliseconds(),
		"jobs", staged,
	)
	return staged
}

// Run drives RunOnce on a fixed cadence until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}
