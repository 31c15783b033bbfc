// Package users persists UserProfile records in the local store.
package users

import (
	"context"

	"github.com/vitrine-app/vitrine/internal/client/models"
)

// Repository describes operations for UserProfile records, keyed by username.
type Repository interface {
	Upsert(ctx context.Context, u *models.UserProfile) error
	GetAll(ctx context.Context) ([]models.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	Clear(ctx context.Context) error
}
