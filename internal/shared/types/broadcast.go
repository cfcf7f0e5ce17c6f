package types

import "time"

// Broadcast is an administrator-issued full-screen interrupt shown to all
// unlocked sessions until dismissed. The broadcast service guarantees at
// most one active broadcast; the core trusts but verifies by displaying
// only the first active one it sees.
type Broadcast struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}
