// Package dispatch holds the staged-job queue, the priority dispatch loop,
// and the idempotent purchase executor.
package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"restock-sentinel/internal/domain/purchase"
	"restock-sentinel/internal/pkg/clock"

	"github.com/google/uuid"
)

const weightCacheTTL = 60 * time.Second

type WeightSource interface {
	Weight(ctx context.Context, userID uuid.UUID) (float64, error)
}

type JobExecutor interface {
	ExecutePurchase(ctx context.Context, job *purchase.Job)
}

type cachedWeight struct {
	weight    float64
	expiresAt time.Time
}

// Scheduler owns the in-memory job queue and the dispatch tick. All mutable
// state lives on the instance so tests can run isolated schedulers.
type Scheduler struct {
	weights  WeightSource
	executor JobExecutor
	clock    clock.Clock
	logger   *slog.Logger

	mu      sync.Mutex
	queue   []*purchase.Job
	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	cacheMu sync.Mutex
	cache   map[uuid.UUID]cachedWeight
}

func NewScheduler(weights WeightSource, executor JobExecutor, clk clock.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		weights:  weights,
		executor: executor,
		clock:    clk,
		logger:   logger,
		cache:    make(map[uuid.UUID]cachedWeight),
	}
}

// Enqueue appends a job. The queue is unbounded and process-local; staged
// jobs do not survive a restart.
func (s *Scheduler) Enqueue(job *purchase.Job) {
	s.mu.Lock()
	s.queue = append(s.queue, job)
	depth := len(s.queue)
	s.mu.Unlock()
	s.logger.Debug("job enqueued", "retailer", job.RetailerSlug, "queue_depth", depth)
}

// Start begins the dispatch loop. Calling Start on a running scheduler has
// no additional effect.
func (s *Scheduler) Start(pollInterval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx, pollInterval)
	s.logger.Info("dispatch loop started", "poll_interval", pollInterval)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("dispatch loop stopped")
}

func (s *Scheduler) loop(ctx context.Context, pollInterval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick selects and dispatches at most one job. Execution runs on its own
// goroutine: a slow checkout must not stall the next tick, so two jobs may
// execute concurrently. Duplicate-purchase safety comes from the idempotency
// lock, not from the loop.
func (s *Scheduler) Tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("dispatch tick panicked", "panic", r)
		}
	}()

	s.mu.Lock()
	snapshot := make([]*purchase.Job, len(s.queue))
	copy(snapshot, s.queue)
	s.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}

	selected := s.selectJob(ctx, snapshot)
	if selected == nil {
		return
	}
	s.remove(selected)

	// Detached from loop cancellation: a shutdown mid-checkout must not
	// strand the job between its attempt row and its terminal row.
	go s.executor.ExecutePurchase(context.WithoutCancel(ctx), selected)
}

// selectJob scans left to right keeping the first strict maximum, so equal
// weights resolve to the earliest-queued job. A weight-resolution failure
// counts as weight 0 only while no candidate has been found yet: it can
// still lose to a later job with a real weight, but some job always wins
// even when every lookup fails.
func (s *Scheduler) selectJob(ctx context.Context, jobs []*purchase.Job) *purchase.Job {
	var selected *purchase.Job
	var selectedWeight float64

	for _, job := range jobs {
		weight, err := s.resolveWeight(ctx, job.UserID)
		if err != nil {
			if selected != nil {
				continue
			}
			weight = 0
		}
		if selected == nil || weight > selectedWeight {
			selected = job
			selectedWeight = weight
		}
	}
	return selected
}

func (s *Scheduler) resolveWeight(ctx context.Context, userID uuid.UUID) (float64, error) {
	now := s.clock.Now()

	s.cacheMu.Lock()
	entry, ok := s.cache[userID]
	s.cacheMu.Unlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.weight, nil
	}

	weight, err := s.weights.Weight(ctx, userID)
	if err != nil {
		s.logger.Warn("priority weight lookup failed", "user_id", userID, "error", err)
		return 0, err
	}

	s.cacheMu.Lock()
	s.cache[userID] = cachedWeight{weight: weight, expiresAt: now.Add(weightCacheTTL)}
	s.cacheMu.Unlock()
	return weight, nil
}

func (s *Scheduler) remove(job *purchase.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, queued := range s.queue {
		if queued == job {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

type Stats struct {
	QueueDepth int  `json:"queue_depth"`
	Started    bool `json:"started"`
}

func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{QueueDepth: len(s.queue), Started: s.started}
}
