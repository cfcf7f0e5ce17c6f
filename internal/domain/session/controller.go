package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/webtop-os/backend/internal/infrastructure/logging"
	"github.com/webtop-os/backend/internal/infrastructure/monitoring"
	"github.com/webtop-os/backend/internal/shared/types"
)

// Authenticator verifies credentials against the external auth service.
// A nil error means success; the returned user is the session's read-only
// identity snapshot.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*types.User, error)
}

// WindowCloser is the logout cascade into the window registry
type WindowCloser interface {
	CloseAll()
}

// Watchdog is started on unlock and stopped on lock
type Watchdog interface {
	Start()
	Stop()
}

// Resetter tears down pending notification expiry on logout
type Resetter interface {
	Reset()
}

// Controller owns the session state machine. Initial state is locked with
// no identity; the identity is non-nil exactly while unlocked.
type Controller struct {
	mu            sync.RWMutex
	locked        bool
	user          *types.User
	startMenuOpen bool

	auth          Authenticator
	windows       WindowCloser
	watchdog      Watchdog
	notifications Resetter

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewController creates a locked session controller. Watchdog and
// notifications may be nil when the caller wires them later or not at all.
func NewController(auth Authenticator, windows WindowCloser, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Controller{
		locked:  true,
		auth:    auth,
		windows: windows,
		logger:  logger,
	}
}

// WithWatchdog wires the broadcast watchdog lifecycle to unlock/lock
func (c *Controller) WithWatchdog(w Watchdog) *Controller {
	c.watchdog = w
	return c
}

// WithNotifications wires notification teardown into logout
func (c *Controller) WithNotifications(r Resetter) *Controller {
	c.notifications = r
	return c
}

// WithMetrics adds metrics tracking to the controller
func (c *Controller) WithMetrics(metrics *monitoring.Metrics) *Controller {
	c.metrics = metrics
	return c
}

// Login delegates the credential check to the authentication service and
// unlocks on success. On failure the session state is untouched and the
// service-provided reason is returned. The authenticate call runs without
// holding the lock; state is mutated only after the result arrives.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	user, err := c.auth.Authenticate(ctx, username, password)
	if err != nil {
		c.logger.Info("login rejected", zap.String("username", username))
		if c.metrics != nil {
			c.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	snapshot := *user
	c.mu.Lock()
	c.user = &snapshot
	c.locked = false
	c.mu.Unlock()

	c.logger.Info("session unlocked",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)
	if c.metrics != nil {
		c.metrics.LoginsTotal.WithLabelValues("success").Inc()
		c.metrics.SessionsActive.Set(1)
	}

	if c.watchdog != nil {
		c.watchdog.Start()
	}
	return nil
}

// Logout locks the session unconditionally: identity cleared, all windows
// closed, start menu shut, pending notifications torn down, watchdog
// stopped. Always succeeds, even when already locked.
func (c *Controller) Logout() {
	c.mu.Lock()
	c.user = nil
	c.locked = true
	c.startMenuOpen = false
	c.mu.Unlock()

	if c.windows != nil {
		c.windows.CloseAll()
	}
	if c.notifications != nil {
		c.notifications.Reset()
	}
	if c.watchdog != nil {
		c.watchdog.Stop()
	}

	c.logger.Info("session locked")
	if c.metrics != nil {
		c.metrics.SessionsActive.Set(0)
	}
}

// Locked reports whether the desktop is gated behind the lock screen
func (c *Controller) Locked() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locked
}

// CurrentUser returns a copy of the authenticated identity, or false
// while locked
func (c *Controller) CurrentUser() (types.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.user == nil {
		return types.User{}, false
	}
	return *c.user, true
}

// StartMenuOpen reports start-menu visibility
func (c *Controller) StartMenuOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startMenuOpen
}

// SetStartMenuOpen toggles start-menu visibility. No-op while locked.
func (c *Controller) SetStartMenuOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.locked {
		return
	}
	c.startMenuOpen = open
}
