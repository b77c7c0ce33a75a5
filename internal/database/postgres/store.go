package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

// dbtx is the query surface shared by *pgxpool.Pool and pgx.Tx
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// queries implements repository.Queries on top of any dbtx
type queries struct {
	db dbtx
}

// Store implements repository.Progression for PostgreSQL
type Store struct {
	*queries
	pool *pgxpool.Pool
}

// NewStore creates a new Store on an open pool. The schema must already be
// migrated (see database.MigratePool).
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		queries: &queries{db: pool},
		pool:    pool,
	}
}

// BeginTx starts a transaction whose queries see and hold its locks
func (s *Store) BeginTx(ctx context.Context) (repository.ProgressionTx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	return &progressionTx{
		queries: &queries{db: tx},
		tx:      tx,
	}, nil
}

// Close releases the pool
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// progressionTx implements repository.ProgressionTx
type progressionTx struct {
	*queries
	tx pgx.Tx
}

func (t *progressionTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *progressionTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("%w: %w", repository.ErrTxClosed, err)
	}
	return err
}
