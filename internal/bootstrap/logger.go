package bootstrap

import (
	"io"
	"log/slog"
	"os"

	"github.com/osse101/TinyWins_Go/internal/config"
	"github.com/osse101/TinyWins_Go/internal/logger"
)

// SetupLogger installs the default logger. Logs go to stderr so command
// output on stdout stays clean.
func SetupLogger(cfg *config.Config) {
	SetupLoggerWithWriter(cfg, os.Stderr)
}

// SetupLoggerWithWriter is SetupLogger with an explicit destination
func SetupLoggerWithWriter(cfg *config.Config, w io.Writer) {
	addSource := cfg.Environment == logger.EnvironmentDev && cfg.LogLevel == logger.LogLevelDebug

	logger.InitLoggerWithWriter(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	), w)

	slog.Debug(LogMsgStarting,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_driver", cfg.DBDriver,
		"sqlite_path", cfg.SQLitePath,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"profile_id", cfg.ProfileID)
}
