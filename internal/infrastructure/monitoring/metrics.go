package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Session metrics
	LoginsTotal    *prometheus.CounterVec
	SessionsActive prometheus.Gauge

	// Window metrics
	WindowsOpen   prometheus.Gauge
	WindowsOpened prometheus.Counter

	// Broadcast metrics
	BroadcastPolls     *prometheus.CounterVec
	BroadcastsShown    prometheus.Counter
	BroadcastDismissed prometheus.Counter

	// Notification metrics
	NotificationsTotal *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge

	startTime time.Time
}

// NewMetrics creates a new metrics collector backed by a dedicated registry
// so repeated construction in tests does not collide.
func NewMetrics() *Metrics {
	return newMetrics(prometheus.NewRegistry())
}

// NewMetricsWith registers all metrics on the provided registerer.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	return newMetrics(reg)
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webtop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webtop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		LoginsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webtop_logins_total",
				Help: "Total number of login attempts",
			},
			[]string{"result"},
		),
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webtop_sessions_active",
				Help: "Number of unlocked desktop sessions",
			},
		),

		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webtop_windows_open",
				Help: "Number of currently open windows",
			},
		),
		WindowsOpened: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webtop_windows_opened_total",
				Help: "Total number of windows opened",
			},
		),

		BroadcastPolls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webtop_broadcast_polls_total",
				Help: "Total number of broadcast polls",
			},
			[]string{"result"},
		),
		BroadcastsShown: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webtop_broadcasts_shown_total",
				Help: "Total number of broadcasts displayed full-screen",
			},
		),
		BroadcastDismissed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webtop_broadcasts_dismissed_total",
				Help: "Total number of broadcasts dismissed",
			},
		),

		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webtop_notifications_total",
				Help: "Total number of notifications pushed",
			},
			[]string{"kind"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webtop_ws_connections",
				Help: "Number of connected websocket clients",
			},
		),
	}
}

// Uptime returns time since metrics initialization
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
