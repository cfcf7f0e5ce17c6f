package broadcast

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/webtop-os/backend/internal/infrastructure/logging"
	"github.com/webtop-os/backend/internal/infrastructure/monitoring"
	"github.com/webtop-os/backend/internal/shared/types"
)

// DefaultInterval is the polling cadence while unlocked
const DefaultInterval = 5 * time.Second

// Service is the external broadcast collaborator. Active returns nil when
// no broadcast is active; both calls are best-effort.
type Service interface {
	Active(ctx context.Context) (*types.Broadcast, error)
	Acknowledge(ctx context.Context, broadcastID string) error
}

// Watchdog polls for the active broadcast while running. Poll results that
// arrive after Stop are discarded via a generation counter so a slow
// response can never resurface a broadcast on a locked session.
type Watchdog struct {
	mu       sync.Mutex
	svc      Service
	interval time.Duration
	current  *types.Broadcast
	cancel   context.CancelFunc
	gen      uint64

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewWatchdog creates an idle watchdog. A zero interval selects the default.
func NewWatchdog(svc Service, interval time.Duration, logger *logging.Logger) *Watchdog {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watchdog{
		svc:      svc,
		interval: interval,
		logger:   logger,
	}
}

// WithMetrics adds metrics tracking to the watchdog
func (w *Watchdog) WithMetrics(metrics *monitoring.Metrics) *Watchdog {
	w.metrics = metrics
	return w
}

// Start transitions Idle -> Polling: one immediate poll, then the fixed
// cadence until Stop. Idempotent while already polling.
func (w *Watchdog) Start() {
	w.mu.Lock()
	if w.cancel != nil {
		w.mu.Unlock()
		return
	}
	w.gen++
	gen := w.gen
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.mu.Unlock()

	go w.run(ctx, gen)
}

// Stop transitions Polling -> Idle. The poll timer is cancelled, not merely
// ignored. A broadcast already on display stays until explicit dismissal.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel == nil {
		return
	}
	w.cancel()
	w.cancel = nil
	w.gen++
}

// Running reports whether the poll loop is active
func (w *Watchdog) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

func (w *Watchdog) run(ctx context.Context, gen uint64) {
	w.poll(ctx, gen)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx, gen)
		}
	}
}

// CheckNow forces an immediate poll, bypassing the cadence. Used right
// after an admin creates a broadcast. No-op while idle.
func (w *Watchdog) CheckNow(ctx context.Context) {
	w.mu.Lock()
	if w.cancel == nil {
		w.mu.Unlock()
		return
	}
	gen := w.gen
	w.mu.Unlock()

	w.poll(ctx, gen)
}

// poll fetches the active broadcast and applies it only if the watchdog is
// still in the same polling generation and nothing is displayed yet.
func (w *Watchdog) poll(ctx context.Context, gen uint64) {
	b, err := w.svc.Active(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.gen || w.cancel == nil {
		// Stale result from a cancelled generation
		return
	}

	if err != nil {
		w.logger.Debug("broadcast poll failed", zap.Error(err))
		if w.metrics != nil {
			w.metrics.BroadcastPolls.WithLabelValues("error").Inc()
		}
		return
	}
	if w.metrics != nil {
		w.metrics.BroadcastPolls.WithLabelValues("ok").Inc()
	}

	if b == nil || !b.IsActive || w.current != nil {
		return
	}

	snapshot := *b
	w.current = &snapshot
	w.logger.Info("broadcast displayed",
		zap.String("broadcast_id", b.ID),
		zap.String("created_by", b.CreatedBy),
	)
	if w.metrics != nil {
		w.metrics.BroadcastsShown.Inc()
	}
}

// Current returns a copy of the displayed broadcast, or nil
func (w *Watchdog) Current() *types.Broadcast {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		return nil
	}
	snapshot := *w.current
	return &snapshot
}

// Dismiss acknowledges the displayed broadcast with the service and clears
// it locally regardless of the remote outcome. A failed acknowledge is
// logged, never surfaced to the caller.
func (w *Watchdog) Dismiss(ctx context.Context) {
	w.mu.Lock()
	if w.current == nil {
		w.mu.Unlock()
		return
	}
	broadcastID := w.current.ID
	w.mu.Unlock()

	if err := w.svc.Acknowledge(ctx, broadcastID); err != nil {
		w.logger.Warn("broadcast acknowledge failed",
			zap.String("broadcast_id", broadcastID),
			zap.Error(err),
		)
	}

	w.mu.Lock()
	if w.current != nil && w.current.ID == broadcastID {
		w.current = nil
		if w.metrics != nil {
			w.metrics.BroadcastDismissed.Inc()
		}
	}
	w.mu.Unlock()
}
