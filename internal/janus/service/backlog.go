package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/janus/internal/janus/store"
)

// BacklogService periodically measures how many requests are waiting on a
// device and publishes the numbers as gauges. Nothing is ever deleted: the
// ledger is an audit trail.
type BacklogService struct {
	Store      store.Store
	Logger     *slog.Logger
	Metrics    *Metrics
	Clock      Clock
	Interval   time.Duration
	PendingTTL time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewBacklogService creates a backlog reporter. If interval is 0 or negative,
// defaults to 1 minute.
func NewBacklogService(
	store store.Store,
	logger *slog.Logger,
	metrics *Metrics,
	interval, pendingTTL time.Duration,
) *BacklogService {
	if interval <= 0 {
		interval = time.Minute
	}

	return &BacklogService{
		Store:      store,
		Logger:     logger,
		Metrics:    metrics,
		Interval:   interval,
		PendingTTL: pendingTTL,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *BacklogService) Start() {
	go s.run()
	s.Logger.Info("backlog service started", "interval", s.Interval)
}

// Stop blocks until the worker has finished any in-progress measurement.
func (s *BacklogService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("backlog service stopped")
}

func (s *BacklogService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Measure(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Measure(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Measure records one sample. Failures are logged and the gauges keep their
// previous values.
func (s *BacklogService) Measure(ctx context.Context) {
	counts, err := s.Store.AuthRequests().CountByStatus(ctx)
	if err != nil {
		s.Logger.Error("failed to count auth requests", "error", err)
		return
	}

	var stale int
	if s.PendingTTL > 0 {
		stale, err = s.Store.AuthRequests().CountPendingOlderThan(ctx, s.Clock.now().Add(-s.PendingTTL))
		if err != nil {
			s.Logger.Error("failed to count expired pending requests", "error", err)
			return
		}
	}

	s.Metrics.backlog(counts.Pending, stale)
	s.Logger.Debug("backlog measured", "pending", counts.Pending, "expired", stale)
}
