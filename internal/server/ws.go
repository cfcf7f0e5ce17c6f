package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/webtop-os/backend/internal/infrastructure/logging"
	"github.com/webtop-os/backend/internal/infrastructure/monitoring"
)

// Event is the push envelope sent to every connected desktop
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Hub fans push events out to connected desktops. Clients only listen;
// inbound frames are drained and dropped.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHub creates an empty hub
func NewHub(logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// WithMetrics adds metrics tracking to the hub
func (h *Hub) WithMetrics(metrics *monitoring.Metrics) *Hub {
	h.metrics = metrics
	return h
}

// Handle upgrades the request and keeps the connection registered until
// the client goes away
func (h *Hub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("desktop connected", zap.Int("clients", n))
	if h.metrics != nil {
		h.metrics.WSConnections.Set(float64(n))
	}

	// Read loop exists only to detect disconnection
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends an event to every connected desktop. Write failures drop
// the client.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(ev); err != nil {
			h.drop(conn)
		}
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
	if h.metrics != nil {
		h.metrics.WSConnections.Set(0)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	conn.Close()

	h.mu.Lock()
	delete(h.clients, conn)
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("desktop disconnected", zap.Int("clients", n))
	if h.metrics != nil {
		h.metrics.WSConnections.Set(float64(n))
	}
}
