package desktop

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/webtop-os/backend/internal/infrastructure/logging"
)

// streamEvent is the envelope pushed by the simulation API over /api/stream
type streamEvent struct {
	Type string `json:"type"`
}

// reconnectDelay paces redial attempts after a dropped connection
const reconnectDelay = 3 * time.Second

// Stream listens on the simulation API's websocket for push events and
// nudges the watchdog when a broadcast is created, so the interrupt shows
// up immediately instead of on the next poll tick.
type Stream struct {
	mu     sync.Mutex
	url    string
	target *Desktop
	cancel context.CancelFunc
	logger *logging.Logger
}

// NewStream creates a stream listener for the given websocket URL
func NewStream(url string, target *Desktop, logger *logging.Logger) *Stream {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Stream{url: url, target: target, logger: logger}
}

// Start begins listening in the background. Idempotent while running.
func (s *Stream) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx)
}

// Stop closes the connection and halts reconnection
func (s *Stream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}

func (s *Stream) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
		if err != nil {
			s.logger.Debug("stream dial failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
				continue
			}
		}

		s.listen(ctx, conn)
		conn.Close()
	}
}

func (s *Stream) listen(ctx context.Context, conn *websocket.Conn) {
	// Unblock ReadJSON when the context is cancelled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var ev streamEvent
		if err := conn.ReadJSON(&ev); err != nil {
			s.logger.Debug("stream closed", zap.Error(err))
			return
		}

		switch ev.Type {
		case "broadcast_created":
			s.logger.Info("broadcast push received")
			s.target.CheckBroadcast(ctx)
		default:
			// Unknown event types are ignored for forward compatibility
		}
	}
}
