package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/TinyWins_Go/internal/config"
	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/database/postgres"
	"github.com/osse101/TinyWins_Go/internal/database/sqlite"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

// OpenStore opens and migrates the store selected by cfg.DBDriver. It
// returns the schema version the store is at.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Progression, int64, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
		version, err := database.Migrate(ctx, db, database.DialectSQLite)
		if err != nil {
			_ = db.Close()
			return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
		slog.Debug(LogMsgStoreOpened, "driver", cfg.DBDriver, "path", cfg.SQLitePath, "version", version)
		return sqlite.NewStore(db), version, nil

	case config.DriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedOpenPostgres, err)
		}
		version, err := database.MigratePool(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedOpenPostgres, err)
		}
		slog.Debug(LogMsgStoreOpened, "driver", cfg.DBDriver, "host", cfg.DBHost, "version", version)
		return postgres.NewStore(pool), version, nil
	}

	return nil, 0, fmt.Errorf("%s: %q", ErrMsgUnsupportedDriver, cfg.DBDriver)
}
