// Package window owns the registry of open application windows: geometry,
// visibility, z-order and the active-window pointer. It is the only mutable
// owner of window state; every read returns a copy.
//
// Operations on unknown ids are silent no-ops, favoring UI robustness over
// strictness (a stale taskbar click racing a close must not fail).
package window
