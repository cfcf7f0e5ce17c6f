package desktop

import (
	"errors"

	"github.com/webtop-os/backend/internal/shared/types"
)

// ErrUnknownApp is returned when a launch names an entry outside the
// catalog, or a window open names a component kind no renderer handles.
var ErrUnknownApp = errors.New("unknown application")

// AppEntry describes one launchable item on the desktop or start menu
type AppEntry struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Kind      types.ComponentKind `json:"component"`
	Icon      string              `json:"icon"`
	AdminOnly bool                `json:"admin_only"`
}

// Catalog is the closed set of launchable applications. Several entries
// share a renderer kind (the explorer views differ only in title and the
// folder they start in).
type Catalog struct {
	entries []AppEntry
	byID    map[string]AppEntry
	kinds   map[types.ComponentKind]struct{}
}

// DefaultCatalog lists the stock desktop and start-menu applications
func DefaultCatalog() *Catalog {
	return NewCatalog([]AppEntry{
		{ID: "file-explorer", Title: "Explorateur", Kind: types.KindFileExplorer, Icon: "📁"},
		{ID: "documents", Title: "Documents", Kind: types.KindFileExplorer, Icon: "📄"},
		{ID: "images", Title: "Images", Kind: types.KindFileExplorer, Icon: "🖼️"},
		{ID: "downloads", Title: "Téléchargements", Kind: types.KindFileExplorer, Icon: "📥"},
		{ID: "browser", Title: "Navigateur", Kind: types.KindBrowser, Icon: "🌐"},
		{ID: "calculator", Title: "Calculatrice", Kind: types.KindCalculator, Icon: "🧮"},
		{ID: "cmd", Title: "Terminal CMD", Kind: types.KindTerminal, Icon: "⌨️"},
		{ID: "settings", Title: "Paramètres", Kind: types.KindSettings, Icon: "⚙️"},
		{ID: "training", Title: "Formation", Kind: types.KindTraining, Icon: "🎓"},
		{ID: "recycle", Title: "Corbeille", Kind: types.KindRecycleBin, Icon: "🗑️"},
		{ID: "admin-panel", Title: "Admin Panel", Kind: types.KindAdminPanel, Icon: "🛡️", AdminOnly: true},
	})
}

// NewCatalog builds a catalog from explicit entries
func NewCatalog(entries []AppEntry) *Catalog {
	c := &Catalog{
		entries: entries,
		byID:    make(map[string]AppEntry, len(entries)),
		kinds:   make(map[types.ComponentKind]struct{}, len(entries)),
	}
	for _, e := range entries {
		c.byID[e.ID] = e
		c.kinds[e.Kind] = struct{}{}
	}
	return c
}

// Lookup resolves a launchable entry by id
func (c *Catalog) Lookup(entryID string) (AppEntry, bool) {
	e, ok := c.byID[entryID]
	return e, ok
}

// KnownKind reports whether any catalog entry renders this component kind
func (c *Catalog) KnownKind(kind types.ComponentKind) bool {
	_, ok := c.kinds[kind]
	return ok
}

// Entries returns the catalog in menu order, filtered by role: admin-only
// entries are omitted for regular users.
func (c *Catalog) Entries(role types.Role) []AppEntry {
	out := make([]AppEntry, 0, len(c.entries))
	for _, e := range c.entries {
		if e.AdminOnly && role != types.RoleAdmin {
			continue
		}
		out = append(out, e)
	}
	return out
}
