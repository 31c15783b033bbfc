package models

import "time"

// Event is a one-shot transient event surfaced to the UI (e.g. a toast),
// distinct from persistent state changes.
type Event struct {
	// ID is a ulid, so events sort lexicographically by creation time.
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
