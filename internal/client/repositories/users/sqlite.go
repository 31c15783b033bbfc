package users

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

func (r *SQLiteRepository) Upsert(ctx context.Context, u *models.UserProfile) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	query := `INSERT INTO users (username, data)
			VALUES (?, ?)
			ON CONFLICT(username) DO UPDATE SET data = excluded.data
	`
	if _, err := r.db.ExecContext(ctx, query, u.Username, data); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM users`)
	if err != nil {
		return nil, fmt.Errorf("failed to select profiles: %w", err)
	}
	defer rows.Close()

	var result []models.UserProfile
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var item models.UserProfile
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM users WHERE username = ?`, username).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select profile: %w", err)
	}

	var item models.UserProfile
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &item, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}
	return nil
}
