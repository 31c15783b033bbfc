package notifications

import (
	"context"
	"encoding/json"
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

func (r *SQLiteRepository) Upsert(ctx context.Context, n *models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	query := `INSERT INTO notifications (id, recipient, data)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET recipient = excluded.recipient, data = excluded.data
	`
	if _, err := r.db.ExecContext(ctx, query, n.ID, n.Recipient, data); err != nil {
		return fmt.Errorf("failed to upsert notification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Notification, error) {
	return r.query(ctx, `SELECT data FROM notifications`)
}

func (r *SQLiteRepository) GetByRecipient(ctx context.Context, recipient string) ([]models.Notification, error) {
	return r.query(ctx, `SELECT data FROM notifications WHERE recipient = ?`, recipient)
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notifications: %w", err)
	}
	defer rows.Close()

	var result []models.Notification
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var item models.Notification
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}
