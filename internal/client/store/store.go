// Package store owns the embedded durable store: a lazily-opened SQLite
// database holding one collection per entity kind, schema management via
// goose, the out-of-band forced-reset token, and the fault-tolerant gateway
// every other component goes through.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/vitrine-app/vitrine/internal/client/store/migrations"
	"github.com/vitrine-app/vitrine/internal/dbx"
	"github.com/vitrine-app/vitrine/internal/logging"
)

// Store owns the single shared connection to the local database. The
// connection is opened lazily: the first DB call opens and migrates it,
// concurrent callers arriving during the in-flight open block and share the
// result rather than racing to open twice.
type Store struct {
	dsn string
	log logging.Logger

	mu sync.Mutex
	db *sql.DB
}

func New(dsn string, log logging.Logger) *Store {
	return &Store{dsn: dsn, log: log}
}

// DB returns the shared connection, opening and migrating the database on
// first use. Open and migration errors propagate to the caller; degrading
// them is the gateway's job, not ours.
func (s *Store) DB(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// A stale connection holding the file lock makes SQLite report "busy";
	// waiting on it (and logging) beats failing the transaction outright.
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	s.log.Info(ctx, "local store opened", "dsn", s.dsn)
	s.db = db
	return s.db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Invalidate drops the cached connection so the next DB call reopens
// cleanly. Used when the environment forcibly invalidates the handle.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
}

// Close releases the connection, if any.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// entityTables lists every entity collection, in wipe order. The goose
// version table is deliberately not included: a data reset is not a schema
// downgrade.
var entityTables = []string{
	"exhibits",
	"collections",
	"users",
	"notifications",
	"messages",
	"system",
	"generic",
}

// Reset clears every entity collection in a single transaction. Used by the
// forced-reset bootstrap path when the data-format epoch is stale.
func (s *Store) Reset(ctx context.Context) error {
	db, err := s.DB(ctx)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, table := range entityTables {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}
