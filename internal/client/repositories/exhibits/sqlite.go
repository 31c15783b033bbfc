package exhibits

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

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts or replaces an exhibit by id. The conflict clause carries
// the lite-upgrade invariant: a lite row may not overwrite a full row, while
// a full row always overwrites a lite one.
func (r *SQLiteRepository) Upsert(ctx context.Context, e *models.Exhibit) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode exhibit: %w", err)
	}

	query := `INSERT INTO exhibits (id, owner, ts, lite, data)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET owner = excluded.owner,
				ts = excluded.ts,
				lite = excluded.lite,
				data = excluded.data
			WHERE NOT (excluded.lite = 1 AND exhibits.lite = 0)
	`
	_, err = r.db.ExecContext(ctx, query, e.ID, e.Owner, e.Timestamp, e.Lite, data)
	if err != nil {
		return fmt.Errorf("failed to upsert exhibit: %w", err)
	}
	return nil
}

// GetAll lists every exhibit ordered by timestamp descending.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Exhibit, error) {
	return r.query(ctx, `SELECT data FROM exhibits ORDER BY ts DESC`)
}

// GetByOwner lists one collector's exhibits, newest first, via the owner index.
func (r *SQLiteRepository) GetByOwner(ctx context.Context, owner string) ([]models.Exhibit, error) {
	return r.query(ctx, `SELECT data FROM exhibits WHERE owner = ? ORDER BY ts DESC`, owner)
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Exhibit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select exhibits: %w", err)
	}
	defer rows.Close()

	var result []models.Exhibit
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var item models.Exhibit
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to decode exhibit: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one exhibit or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Exhibit, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM exhibits WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select exhibit: %w", err)
	}

	var item models.Exhibit
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to decode exhibit: %w", err)
	}
	return &item, nil
}

// DeleteByID removes an exhibit. Deleting a missing id is not an error.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM exhibits WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete exhibit: %w", err)
	}
	return nil
}

// Clear removes every exhibit.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM exhibits`); err != nil {
		return fmt.Errorf("failed to clear exhibits: %w", err)
	}
	return nil
}
