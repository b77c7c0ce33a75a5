package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migration dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFS embed.FS

func migrationSource(dialect string) (goose.Dialect, fs.FS, error) {
	var (
		gd  goose.Dialect
		dir string
	)
	switch dialect {
	case DialectPostgres:
		gd, dir = goose.DialectPostgres, "migrations/postgres"
	case DialectSQLite:
		gd, dir = goose.DialectSQLite3, "migrations/sqlite"
	default:
		return "", nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedDialect, dialect)
	}

	sub, err := fs.Sub(migrationFS, dir)
	if err != nil {
		return "", nil, err
	}
	return gd, sub, nil
}

// Migrate applies every pending embedded migration for dialect and returns
// the resulting schema version
func Migrate(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	gd, fsys, err := migrationSource(dialect)
	if err != nil {
		return 0, err
	}

	provider, err := goose.NewProvider(gd, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToRunMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToRunMigrations, err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToRunMigrations, err)
	}

	slog.Default().Info(LogMsgMigrationsApplied, "dialect", dialect, "applied", len(results), "version", version)
	return version, nil
}

// MigratePool runs Migrate against a pgx pool through the database/sql bridge
func MigratePool(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Migrate(ctx, db, DialectPostgres)
}
