package types

import "time"

// NotificationKind classifies a toast message
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
	NotifyWarning NotificationKind = "warning"
)

// Notification is an ephemeral toast. Entries expire automatically
// five seconds after creation unless dismissed earlier.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title,omitempty"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}
