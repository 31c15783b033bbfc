// Package collections persists Collection records in the local store.
package collections

import (
	"context"

	"github.com/vitrine-app/vitrine/internal/client/models"
)

// Repository describes CRUD and query operations for Collection records.
type Repository interface {
	Upsert(ctx context.Context, c *models.Collection) error
	GetAll(ctx context.Context) ([]models.Collection, error)
	GetByID(ctx context.Context, id string) (*models.Collection, error)
	GetByOwner(ctx context.Context, owner string) ([]models.Collection, error)
	DeleteByID(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
