package types

import "time"

// ComponentKind identifies which app renderer mounts a window.
// The set is closed; the desktop catalog rejects unknown kinds.
type ComponentKind string

const (
	KindCalculator   ComponentKind = "calculator"
	KindFileExplorer ComponentKind = "file_explorer"
	KindBrowser      ComponentKind = "browser"
	KindTerminal     ComponentKind = "terminal"
	KindSettings     ComponentKind = "settings"
	KindAdminPanel   ComponentKind = "admin_panel"
	KindTraining     ComponentKind = "training"
	KindRecycleBin   ComponentKind = "recycle_bin"
)

// Geometry is a window rectangle. Position and size are only meaningful
// while the window is not maximized.
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowRecord is the core's model of one open application surface.
// The window registry exclusively owns the collection; renderers see copies.
type WindowRecord struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Kind      ComponentKind `json:"component"`
	Icon      string        `json:"icon,omitempty"`
	Geometry  Geometry      `json:"geometry"`
	Minimized bool          `json:"minimized"`
	Maximized bool          `json:"maximized"`
	ZIndex    int           `json:"z_index"`
	OpenedAt  time.Time     `json:"opened_at"`
}

// Visible reports whether the window should render.
// Minimized wins over maximized for visibility.
func (w *WindowRecord) Visible() bool {
	return !w.Minimized
}

// WindowDescriptor is a declarative open request from the launcher facade.
// ID is optional; missing ids are derived from the window id generator.
// Geometry is optional; missing geometry gets the cascading default.
type WindowDescriptor struct {
	ID       string        `json:"id,omitempty"`
	Title    string        `json:"title"`
	Kind     ComponentKind `json:"component"`
	Icon     string        `json:"icon,omitempty"`
	Geometry *Geometry     `json:"geometry,omitempty"`
}
