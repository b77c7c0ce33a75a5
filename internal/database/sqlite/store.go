package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

// dbtx is the query surface shared by *sql.DB and *sql.Tx
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries implements repository.Queries on top of any dbtx
type queries struct {
	db  dbtx
	now func() time.Time
}

// Store implements repository.Progression for a local SQLite file
type Store struct {
	*queries
	sqlDB *sql.DB
}

// Open opens the database at path, applies pending migrations and returns a Store
func Open(ctx context.Context, path string) (*Store, error) {
	sqlDB, err := database.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if _, err := database.Migrate(ctx, sqlDB, database.DialectSQLite); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return NewStore(sqlDB), nil
}

// NewStore wraps an already migrated database handle
func NewStore(sqlDB *sql.DB) *Store {
	return &Store{
		queries: &queries{db: sqlDB, now: time.Now},
		sqlDB:   sqlDB,
	}
}

// BeginTx starts a transaction. The handle has a single connection, so an
// open transaction blocks every other caller until it ends.
func (s *Store) BeginTx(ctx context.Context) (repository.ProgressionTx, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	return &progressionTx{
		queries: &queries{db: tx, now: s.now},
		tx:      tx,
	}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// progressionTx implements repository.ProgressionTx
type progressionTx struct {
	*queries
	tx *sql.Tx
}

func (t *progressionTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *progressionTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("%w: %w", repository.ErrTxClosed, err)
	}
	return err
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
