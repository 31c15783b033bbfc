// Package system persists single-purpose key/value records, such as the
// active-session pointer.
package system

import "context"

// Repository describes operations on the system key/value collection.
type Repository interface {
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Get returns the value for key, or common.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Clear(ctx context.Context) error
}
