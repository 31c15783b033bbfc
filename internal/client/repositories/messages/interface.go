// Package messages persists direct Message records in the local store.
package messages

import (
	"context"

	"github.com/vitrine-app/vitrine/internal/client/models"
)

// Repository describes operations for Message records.
type Repository interface {
	Upsert(ctx context.Context, m *models.Message) error
	GetAll(ctx context.Context) ([]models.Message, error)
	Clear(ctx context.Context) error
}
