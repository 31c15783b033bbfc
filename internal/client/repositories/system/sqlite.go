package system

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vitrine-app/vitrine/internal/common"
	"github.com/vitrine-app/vitrine/internal/dbx"
)

// KeySession is the system key holding the active-session record.
const KeySession = "session"

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, key, value string) error {
	query := `INSERT INTO system (key, value)
			VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to put system record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM system WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to select system record: %w", err)
	}
	return value, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM system WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete system record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM system`); err != nil {
		return fmt.Errorf("failed to clear system records: %w", err)
	}
	return nil
}
