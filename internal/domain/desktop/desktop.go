// Package desktop composes the session controller, window registry,
// broadcast watchdog and notification queue behind one facade. Every
// user-visible operation of the simulated desktop enters here.
package desktop

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/webtop-os/backend/internal/domain/broadcast"
	"github.com/webtop-os/backend/internal/domain/notify"
	"github.com/webtop-os/backend/internal/domain/session"
	"github.com/webtop-os/backend/internal/domain/window"
	"github.com/webtop-os/backend/internal/infrastructure/logging"
	"github.com/webtop-os/backend/internal/shared/types"
)

var (
	// ErrLocked rejects desktop operations while the session is locked
	ErrLocked = errors.New("session is locked")

	// ErrForbidden rejects admin-only operations for regular users
	ErrForbidden = errors.New("operation requires admin role")
)

// Broadcaster creates broadcasts on the external service. Only the admin
// panel path uses it; the watchdog handles polling and acknowledgement.
type Broadcaster interface {
	Create(ctx context.Context, title, message, createdBy string) (*types.Broadcast, error)
}

// Desktop is the launcher facade over the desktop core
type Desktop struct {
	session       *session.Controller
	windows       *window.Manager
	watchdog      *broadcast.Watchdog
	notifications *notify.Queue
	catalog       *Catalog
	broadcaster   Broadcaster
	logger        *logging.Logger
}

// New wires the facade. Broadcaster may be nil when broadcast creation is
// not exposed (regular-user builds).
func New(
	sess *session.Controller,
	windows *window.Manager,
	watchdog *broadcast.Watchdog,
	notifications *notify.Queue,
	catalog *Catalog,
	logger *logging.Logger,
) *Desktop {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Desktop{
		session:       sess,
		windows:       windows,
		watchdog:      watchdog,
		notifications: notifications,
		catalog:       catalog,
		logger:        logger,
	}
}

// WithBroadcaster enables broadcast creation through the facade
func (d *Desktop) WithBroadcaster(b Broadcaster) *Desktop {
	d.broadcaster = b
	return d
}

// Session surface

// Login unlocks the desktop. On success a welcome toast is queued.
func (d *Desktop) Login(ctx context.Context, username, password string) error {
	if err := d.session.Login(ctx, username, password); err != nil {
		return err
	}
	if user, ok := d.session.CurrentUser(); ok && d.notifications != nil {
		d.notifications.Push(types.NotifySuccess, "Connexion réussie", "Bienvenue "+user.Username)
	}
	return nil
}

// Logout locks the desktop and tears down all per-session state
func (d *Desktop) Logout() {
	d.session.Logout()
}

// Locked reports whether the lock screen is up
func (d *Desktop) Locked() bool {
	return d.session.Locked()
}

// CurrentUser returns the authenticated identity while unlocked
func (d *Desktop) CurrentUser() (types.User, bool) {
	return d.session.CurrentUser()
}

// StartMenuOpen reports start-menu visibility
func (d *Desktop) StartMenuOpen() bool {
	return d.session.StartMenuOpen()
}

// SetStartMenuOpen toggles the start menu. No-op while locked.
func (d *Desktop) SetStartMenuOpen(open bool) {
	d.session.SetStartMenuOpen(open)
}

// Launcher surface

// Apps lists the catalog entries the current user may launch
func (d *Desktop) Apps() []AppEntry {
	user, ok := d.session.CurrentUser()
	if !ok {
		return nil
	}
	return d.catalog.Entries(user.Role)
}

// Launch opens the window for a catalog entry. The entry id doubles as the
// window id, so relaunching an open app restores and focuses it instead of
// duplicating it.
func (d *Desktop) Launch(entryID string) (types.WindowRecord, error) {
	user, ok := d.session.CurrentUser()
	if !ok {
		return types.WindowRecord{}, ErrLocked
	}

	entry, found := d.catalog.Lookup(entryID)
	if !found {
		d.logger.Warn("launch rejected", zap.String("entry_id", entryID))
		return types.WindowRecord{}, ErrUnknownApp
	}
	if entry.AdminOnly && !user.IsAdmin() {
		return types.WindowRecord{}, ErrForbidden
	}

	return d.OpenWindow(types.WindowDescriptor{
		ID:    entry.ID,
		Title: entry.Title,
		Kind:  entry.Kind,
		Icon:  entry.Icon,
	})
}

// Window surface

// OpenWindow opens or restores a window. Rejected while locked and for
// component kinds outside the catalog. Opening closes the start menu.
func (d *Desktop) OpenWindow(desc types.WindowDescriptor) (types.WindowRecord, error) {
	if d.session.Locked() {
		return types.WindowRecord{}, ErrLocked
	}
	if !d.catalog.KnownKind(desc.Kind) {
		d.logger.Warn("open rejected", zap.String("component", string(desc.Kind)))
		return types.WindowRecord{}, ErrUnknownApp
	}

	d.session.SetStartMenuOpen(false)
	rec := d.windows.Open(desc)
	d.logger.Debug("window opened",
		zap.String("window_id", rec.ID),
		zap.String("component", string(rec.Kind)),
	)
	return rec, nil
}

// CloseWindow removes a window. False on unknown ids.
func (d *Desktop) CloseWindow(windowID string) bool {
	return d.windows.Close(windowID)
}

// MinimizeWindow hides a window without closing it
func (d *Desktop) MinimizeWindow(windowID string) bool {
	return d.windows.Minimize(windowID)
}

// ToggleMaximizeWindow flips a window between maximized and its stored
// rectangle
func (d *Desktop) ToggleMaximizeWindow(windowID string) bool {
	return d.windows.ToggleMaximize(windowID)
}

// FocusWindow raises a window and restores it if minimized
func (d *Desktop) FocusWindow(windowID string) bool {
	return d.windows.Focus(windowID)
}

// MoveWindow repositions a window. No-op while maximized.
func (d *Desktop) MoveWindow(windowID string, x, y int) bool {
	return d.windows.Move(windowID, x, y)
}

// Windows returns all open windows in insertion order
func (d *Desktop) Windows() []types.WindowRecord {
	return d.windows.List()
}

// ActiveWindowID returns the focused window id, or false when none
func (d *Desktop) ActiveWindowID() (string, bool) {
	return d.windows.ActiveID()
}

// Broadcast surface

// ActiveBroadcast returns the broadcast on display, or nil
func (d *Desktop) ActiveBroadcast() *types.Broadcast {
	if d.watchdog == nil {
		return nil
	}
	return d.watchdog.Current()
}

// DismissBroadcast acknowledges and clears the displayed broadcast. Any
// logged-in user may dismiss regardless of who sent it.
func (d *Desktop) DismissBroadcast(ctx context.Context) {
	if d.watchdog == nil {
		return
	}
	d.watchdog.Dismiss(ctx)
}

// CheckBroadcast forces an immediate poll, used when a push event signals
// a new broadcast
func (d *Desktop) CheckBroadcast(ctx context.Context) {
	if d.watchdog == nil {
		return
	}
	d.watchdog.CheckNow(ctx)
}

// SendBroadcast creates a broadcast on the service and polls right away so
// the sender's own desktop displays it without waiting a full interval.
// Admin-only.
func (d *Desktop) SendBroadcast(ctx context.Context, title, message string) (*types.Broadcast, error) {
	user, ok := d.session.CurrentUser()
	if !ok {
		return nil, ErrLocked
	}
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}
	if d.broadcaster == nil {
		return nil, errors.New("broadcast creation not configured")
	}

	b, err := d.broadcaster.Create(ctx, title, message, user.Username)
	if err != nil {
		return nil, err
	}
	d.CheckBroadcast(ctx)
	return b, nil
}

// Notification surface

// AddNotification queues a toast. Returns the assigned id.
func (d *Desktop) AddNotification(kind types.NotificationKind, title, message string) string {
	if d.notifications == nil {
		return ""
	}
	return d.notifications.Push(kind, title, message)
}

// Notifications lists pending toasts in insertion order
func (d *Desktop) Notifications() []types.Notification {
	if d.notifications == nil {
		return nil
	}
	return d.notifications.List()
}

// DismissNotification removes a toast before its TTL fires
func (d *Desktop) DismissNotification(notificationID string) bool {
	if d.notifications == nil {
		return false
	}
	return d.notifications.Dismiss(notificationID)
}
