// Package notify holds the ephemeral toast queue. Entries expire on their
// own after a fixed TTL. Expiry and explicit dismissal are idempotent:
// whichever fires first removes the entry.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/webtop-os/backend/internal/infrastructure/logging"
	"github.com/webtop-os/backend/internal/infrastructure/monitoring"
	"github.com/webtop-os/backend/internal/shared/id"
	"github.com/webtop-os/backend/internal/shared/types"
)

// DefaultTTL is the wall-clock lifetime of a toast
const DefaultTTL = 5 * time.Second

// Queue holds toasts in insertion order with one cancellable expiry timer
// per entry. There is no cap on concurrent notifications.
type Queue struct {
	mu     sync.Mutex
	items  []types.Notification
	timers map[string]*time.Timer
	ttl    time.Duration

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewQueue creates an empty queue. A zero TTL selects the default.
func NewQueue(ttl time.Duration, logger *logging.Logger) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Queue{
		timers: make(map[string]*time.Timer),
		ttl:    ttl,
		logger: logger,
	}
}

// WithMetrics adds metrics tracking to the queue
func (q *Queue) WithMetrics(metrics *monitoring.Metrics) *Queue {
	q.metrics = metrics
	return q
}

// Push appends a toast and arms its expiry timer. Returns the assigned id.
func (q *Queue) Push(kind types.NotificationKind, title, message string) string {
	now := time.Now()
	n := types.Notification{
		ID:        id.NewNotificationID(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}

	q.mu.Lock()
	q.items = append(q.items, n)
	q.timers[n.ID] = time.AfterFunc(q.ttl, func() {
		q.Dismiss(n.ID)
	})
	q.mu.Unlock()

	q.logger.Debug("notification pushed",
		zap.String("notification_id", n.ID),
		zap.String("kind", string(kind)),
	)
	if q.metrics != nil {
		q.metrics.NotificationsTotal.WithLabelValues(string(kind)).Inc()
	}
	return n.ID
}

// Dismiss removes a toast early and cancels its timer. No-op on unknown
// ids, so the expiry callback and an explicit dismissal cannot race.
func (q *Queue) Dismiss(notificationID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[notificationID]; ok {
		timer.Stop()
		delete(q.timers, notificationID)
	}

	for i, n := range q.items {
		if n.ID == notificationID {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns copies of pending toasts in insertion order
func (q *Queue) List() []types.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]types.Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of pending toasts
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Reset empties the queue and cancels every pending timer. Used on logout
// so no expiry task leaks across sessions.
func (q *Queue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for nid, timer := range q.timers {
		timer.Stop()
		delete(q.timers, nid)
	}
	q.items = nil
}
