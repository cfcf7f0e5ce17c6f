package window

import (
	"sync"
	"time"

	"github.com/webtop-os/backend/internal/infrastructure/monitoring"
	"github.com/webtop-os/backend/internal/shared/id"
	"github.com/webtop-os/backend/internal/shared/types"
)

// Default geometry for windows whose descriptor omits one. New windows
// cascade by CascadeStep per already-open window to avoid exact overlap.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	CascadeX      = 100
	CascadeY      = 50
	CascadeStep   = 30
)

// Manager orchestrates window lifecycle and focus arbitration
type Manager struct {
	mu       sync.RWMutex
	windows  []*types.WindowRecord // insertion order
	activeID *string
	zCounter int // monotonic for the registry's lifetime, never reset on close
	metrics  *monitoring.Metrics
}

// NewManager creates an empty window registry
func NewManager() *Manager {
	return &Manager{}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Open creates a window from a descriptor, or restores and focuses an
// existing window with the same id. Opening is idempotent: a second open
// never duplicates the record and never resets its position.
func (m *Manager) Open(desc types.WindowDescriptor) types.WindowRecord {
	windowID := desc.ID
	if windowID == "" {
		windowID = id.NewWindowID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing := m.find(windowID); existing != nil {
		m.focusLocked(existing)
		return *existing
	}

	geo := types.Geometry{
		X:      CascadeX + CascadeStep*len(m.windows),
		Y:      CascadeY + CascadeStep*len(m.windows),
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	if desc.Geometry != nil {
		if desc.Geometry.Width > 0 {
			geo.Width = desc.Geometry.Width
		}
		if desc.Geometry.Height > 0 {
			geo.Height = desc.Geometry.Height
		}
		if desc.Geometry.X != 0 || desc.Geometry.Y != 0 {
			geo.X = desc.Geometry.X
			geo.Y = desc.Geometry.Y
		}
	}

	rec := &types.WindowRecord{
		ID:       windowID,
		Title:    desc.Title,
		Kind:     desc.Kind,
		Icon:     desc.Icon,
		Geometry: geo,
		ZIndex:   len(m.windows) + 1, // transient; focus re-derives it below
		OpenedAt: time.Now(),
	}

	m.windows = append(m.windows, rec)
	m.focusLocked(rec)

	if m.metrics != nil {
		m.metrics.WindowsOpened.Inc()
		m.metrics.WindowsOpen.Set(float64(len(m.windows)))
	}

	return *rec
}

// Focus makes the window active, raises it above all others, and clears
// its minimized flag (taskbar click-to-restore semantics). Returns false
// on unknown ids.
func (m *Manager) Focus(windowID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.find(windowID)
	if rec == nil {
		return false
	}
	m.focusLocked(rec)
	return true
}

// focusLocked assigns the next z-index and moves the pointer. Allocation is
// monotonic across the registry's lifetime, so ties are impossible and newer
// focus always wins visually. Caller must hold mu.
func (m *Manager) focusLocked(rec *types.WindowRecord) {
	m.zCounter++
	rec.ZIndex = m.zCounter
	rec.Minimized = false
	m.activeID = &rec.ID
}

// Close removes the window. Surviving windows keep their z-indexes. The
// active pointer moves to the most recently opened non-minimized survivor,
// or to none when every survivor is minimized.
func (m *Manager) Close(windowID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, w := range m.windows {
		if w.ID == windowID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)
	m.rearbitrate()

	if m.metrics != nil {
		m.metrics.WindowsOpen.Set(float64(len(m.windows)))
	}
	return true
}

// rearbitrate recomputes the active pointer after a removal. The pointer is
// kept only while it names an open, non-minimized window. Caller must hold mu.
func (m *Manager) rearbitrate() {
	if m.activeID != nil {
		if cur := m.find(*m.activeID); cur != nil && !cur.Minimized {
			return
		}
	}
	m.activeID = nil
	for i := len(m.windows) - 1; i >= 0; i-- {
		if !m.windows[i].Minimized {
			m.activeID = &m.windows[i].ID
			return
		}
	}
}

// Minimize hides the window. The pointer and z-index are left untouched;
// renderers treat minimized as hidden regardless of active status.
func (m *Manager) Minimize(windowID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.find(windowID)
	if rec == nil {
		return false
	}
	rec.Minimized = true
	return true
}

// ToggleMaximize flips the maximized flag. Stored geometry is untouched, so
// un-maximizing restores the prior rectangle exactly.
func (m *Manager) ToggleMaximize(windowID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.find(windowID)
	if rec == nil {
		return false
	}
	rec.Maximized = !rec.Maximized
	return true
}

// Move repositions the window. Silent no-op while maximized.
func (m *Manager) Move(windowID string, x, y int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.find(windowID)
	if rec == nil || rec.Maximized {
		return false
	}
	rec.Geometry.X = x
	rec.Geometry.Y = y
	return true
}

// CloseAll empties the registry and clears the pointer. Used on logout.
// The z-counter is not reset.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.windows = nil
	m.activeID = nil

	if m.metrics != nil {
		m.metrics.WindowsOpen.Set(0)
	}
}

// Get retrieves a copy of a window by id
func (m *Manager) Get(windowID string) (types.WindowRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec := m.find(windowID)
	if rec == nil {
		return types.WindowRecord{}, false
	}
	return *rec, true
}

// List returns copies of all open windows in insertion order
func (m *Manager) List() []types.WindowRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.WindowRecord, len(m.windows))
	for i, w := range m.windows {
		out[i] = *w
	}
	return out
}

// ActiveID returns the focused window id, or false when no window is
// open or every open window is minimized
func (m *Manager) ActiveID() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.activeID == nil {
		return "", false
	}
	return *m.activeID, true
}

// Count returns the number of open windows
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.windows)
}

// find returns the live record for an id. Caller must hold mu.
func (m *Manager) find(windowID string) *types.WindowRecord {
	for _, w := range m.windows {
		if w.ID == windowID {
			return w
		}
	}
	return nil
}
