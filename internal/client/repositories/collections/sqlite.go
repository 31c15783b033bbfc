package collections

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vitrine-app/vitrine/internal/client/models"
	"github.com/vitrine-app/vitrine/internal/common"
	"github.com/vitrine-app/vitrine/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, c *models.Collection) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	query := `INSERT INTO collections (id, owner, data)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET owner = excluded.owner, data = excluded.data
	`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Owner, data); err != nil {
		return fmt.Errorf("failed to upsert collection: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Collection, error) {
	return r.query(ctx, `SELECT data FROM collections`)
}

func (r *SQLiteRepository) GetByOwner(ctx context.Context, owner string) ([]models.Collection, error) {
	return r.query(ctx, `SELECT data FROM collections WHERE owner = ?`, owner)
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Collection, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select collections: %w", err)
	}
	defer rows.Close()

	var result []models.Collection
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var item models.Collection
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to decode collection: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select collection: %w", err)
	}

	var item models.Collection
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	return &item, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collections`); err != nil {
		return fmt.Errorf("failed to clear collections: %w", err)
	}
	return nil
}
