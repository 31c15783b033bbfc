package generic

import (
	"context"
	"fmt"

	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, rec *models.GenericRecord) error {
	query := `INSERT INTO generic (id, tbl, data)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET tbl = excluded.tbl, data = excluded.data
	`
	if _, err := r.db.ExecContext(ctx, query, rec.ID, string(rec.Table), []byte(rec.Data)); err != nil {
		return fmt.Errorf("failed to upsert generic record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.GenericRecord, error) {
	return r.query(ctx, `SELECT id, tbl, data FROM generic`)
}

// GetByTable returns the records of one logical table via the tag index.
func (r *SQLiteRepository) GetByTable(ctx context.Context, tbl models.GenericTable) ([]models.GenericRecord, error) {
	return r.query(ctx, `SELECT id, tbl, data FROM generic WHERE tbl = ?`, string(tbl))
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.GenericRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select generic records: %w", err)
	}
	defer rows.Close()

	var result []models.GenericRecord
	for rows.Next() {
		var item models.GenericRecord
		var tbl string
		if err := rows.Scan(&item.ID, &tbl, (*[]byte)(&item.Data)); err != nil {
			return nil, err
		}
		item.Table = models.GenericTable(tbl)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM generic WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete generic record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM generic`); err != nil {
		return fmt.Errorf("failed to clear generic records: %w", err)
	}
	return nil
}
