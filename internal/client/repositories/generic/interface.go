// Package generic persists the polymorphic record collection: wishlist
// items, guestbook entries, guild records and trade requests share one
// physical table, partitioned by a table tag.
package generic

import (
	"context"

	"github.com/vitrine-app/vitrine/internal/client/models"
)

// Repository describes operations on the generic collection. Record ids are
// unique across all logical tables sharing the collection.
type Repository interface {
	Upsert(ctx context.Context, rec *models.GenericRecord) error
	GetAll(ctx context.Context) ([]models.GenericRecord, error)
	GetByTable(ctx context.Context, tbl models.GenericTable) ([]models.GenericRecord, error)
	DeleteByID(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
