// Package server hosts the simulation API: authentication, user and log
// management, broadcasts, and the websocket push stream the desktops
// subscribe to.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/webtop-os/backend/internal/api/middleware"
	"github.com/webtop-os/backend/internal/infrastructure/config"
	"github.com/webtop-os/backend/internal/infrastructure/logging"
	"github.com/webtop-os/backend/internal/infrastructure/monitoring"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	store   *Store
	hub     *Hub
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// New creates a fully wired server
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	store, err := NewStore()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetricsWith(registry)

	hub := NewHub(logger).WithMetrics(metrics)
	handlers := NewHandlers(store, hub, logger).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.CORSOrigins)))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	router.Use(monitoring.Middleware(metrics))

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.POST("/auth/login", handlers.Login)

		api.GET("/users", handlers.ListUsers)
		api.POST("/users", handlers.CreateUser)
		api.PUT("/users/:id", handlers.UpdateUser)
		api.DELETE("/users/:id", handlers.DeleteUser)

		api.GET("/logs", handlers.Logs)
		api.DELETE("/logs", handlers.ClearLogs)

		api.POST("/broadcast", handlers.CreateBroadcast)
		api.GET("/broadcast/active", handlers.ActiveBroadcast)
		api.DELETE("/broadcast/:id", handlers.DismissBroadcast)

		api.GET("/stream", hub.Handle)
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		store:   store,
		hub:     hub,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until the listener fails or Shutdown is called
func (s *Server) Run() error {
	s.logger.Info("simulation API listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and disconnects websocket clients
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}
