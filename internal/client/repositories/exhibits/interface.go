// Package exhibits persists Exhibit records in the local store.
package exhibits

import (
	"context"

	"github.com/vitrine-app/vitrine/internal/client/models"
)

// Repository describes CRUD and query operations for Exhibit records.
type Repository interface {
	// Upsert inserts a new exhibit or replaces an existing one by id.
	// A lite record never replaces a full record with the same id.
	Upsert(ctx context.Context, e *models.Exhibit) error

	// GetAll returns all exhibits, newest first.
	GetAll(ctx context.Context) ([]models.Exhibit, error)

	// GetByID returns one exhibit by id.
	GetByID(ctx context.Context, id string) (*models.Exhibit, error)

	// GetByOwner returns the exhibits published by one collector, newest first.
	GetByOwner(ctx context.Context, owner string) ([]models.Exhibit, error)

	// DeleteByID removes an exhibit.
	DeleteByID(ctx context.Context, id string) error

	// Clear removes every exhibit.
	Clear(ctx context.Context) error
}
