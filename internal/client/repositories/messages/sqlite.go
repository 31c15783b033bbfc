package messages

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

func (r *SQLiteRepository) Upsert(ctx context.Context, m *models.Message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	query := `INSERT INTO messages (id, data)
			VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET data = excluded.data
	`
	if _, err := r.db.ExecContext(ctx, query, m.ID, data); err != nil {
		return fmt.Errorf("failed to upsert message: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Message, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM messages`)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []models.Message
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var item models.Message
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}
