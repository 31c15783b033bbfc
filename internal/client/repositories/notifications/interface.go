// Package notifications persists Notification records in the local store.
package notifications

import (
	"context"

	"github.com/vitrine-app/vitrine/internal/client/models"
)

// Repository describes operations for Notification records.
type Repository interface {
	Upsert(ctx context.Context, n *models.Notification) error
	GetAll(ctx context.Context) ([]models.Notification, error)
	GetByRecipient(ctx context.Context, recipient string) ([]models.Notification, error)
	DeleteByID(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
