package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webtop-os/backend/internal/infrastructure/logging"
	"github.com/webtop-os/backend/internal/infrastructure/monitoring"
	"github.com/webtop-os/backend/internal/shared/types"
)

// Handlers carries the route implementations of the simulation API
type Handlers struct {
	store   *Store
	hub     *Hub
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandlers creates the handler set
func NewHandlers(store *Store, hub *Hub, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{store: store, hub: hub, logger: logger}
}

// WithMetrics adds metrics access for the status route
func (h *Handlers) WithMetrics(metrics *monitoring.Metrics) *Handlers {
	h.metrics = metrics
	return h
}

// Root describes the service
func (h *Handlers) Root(c *gin.Context) {
	resp := gin.H{
		"service": "webtop-api",
		"status":  "running",
	}
	if h.metrics != nil {
		resp["uptime"] = h.metrics.Uptime().String()
	}
	c.JSON(http.StatusOK, resp)
}

// Health answers liveness probes
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Login verifies credentials and records the attempt
func (h *Handlers) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.LoginResponse{
			Success: false,
			Message: "Identifiant ou mot de passe manquant",
		})
		return
	}

	user, err := h.store.Authenticate(req.Username, req.Password, c.ClientIP())
	if err != nil {
		h.logger.Info("login rejected",
			zap.String("username", req.Username),
			zap.String("ip", c.ClientIP()),
		)
		c.JSON(http.StatusUnauthorized, types.LoginResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	h.logger.Info("login accepted",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)
	c.JSON(http.StatusOK, types.LoginResponse{
		Success: true,
		User:    user,
		Message: "Connexion réussie",
	})
}

// ListUsers returns all accounts
func (h *Handlers) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Users())
}

// CreateUser adds an account
func (h *Handlers) CreateUser(c *gin.Context) {
	var req types.UserUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant ou mot de passe manquant"})
		return
	}

	user, err := h.store.CreateUser(req.Username, req.Password, req.Role)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUserExists) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser rewrites an account
func (h *Handlers) UpdateUser(c *gin.Context) {
	var req types.UserUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant ou mot de passe manquant"})
		return
	}

	err := h.store.UpdateUser(c.Param("id"), req.Username, req.Password, req.Role)
	switch {
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// DeleteUser removes an account. SuperAdmin is refused.
func (h *Handlers) DeleteUser(c *gin.Context) {
	err := h.store.DeleteUser(c.Param("id"))
	switch {
	case errors.Is(err, ErrSuperAdminLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Logs returns the login history, newest first
func (h *Handlers) Logs(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Logs())
}

// ClearLogs empties the login history
func (h *Handlers) ClearLogs(c *gin.Context) {
	h.store.ClearLogs()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateBroadcast stores a broadcast and pushes a wake-up event so every
// connected desktop polls immediately
func (h *Handlers) CreateBroadcast(c *gin.Context) {
	var req types.BroadcastCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message manquant"})
		return
	}

	b := h.store.CreateBroadcast(req.Title, req.Message, req.CreatedBy)
	h.logger.Info("broadcast created",
		zap.String("broadcast_id", b.ID),
		zap.String("created_by", b.CreatedBy),
	)
	if h.hub != nil {
		h.hub.Broadcast(Event{Type: "broadcast_created", Data: gin.H{"id": b.ID}})
	}
	c.JSON(http.StatusCreated, b)
}

// ActiveBroadcast returns the active broadcast or a JSON null
func (h *Handlers) ActiveBroadcast(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ActiveBroadcast())
}

// DismissBroadcast deactivates a broadcast. Idempotent.
func (h *Handlers) DismissBroadcast(c *gin.Context) {
	h.store.DeactivateBroadcast(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
