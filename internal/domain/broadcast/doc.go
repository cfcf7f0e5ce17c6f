// Package broadcast discovers administrator-issued full-screen interrupts
// by polling the broadcast service while the session is unlocked.
//
// The watchdog has two states: Idle (locked, no poll timer) and Polling
// (unlocked, one cancellable goroutine on a fixed cadence). At most one
// broadcast is displayed at a time. Dismissal is optimistic: local state
// clears even when the remote acknowledge fails.
package broadcast
