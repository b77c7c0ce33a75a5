package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/TinyWins_Go/internal/metrics"
)

// Shutdown flushes metrics to the configured textfile and closes the store.
// Errors are logged; shutdown always runs to the end.
func Shutdown(ctx context.Context, svcs *Services, metricsPath string) {
	// WriteTextfile logs its own failure
	_ = metrics.WriteTextfile(ctx, metricsPath)

	if svcs == nil || svcs.Store == nil {
		return
	}
	if err := svcs.Store.Close(); err != nil {
		slog.Error(LogMsgStoreCloseFailed, "error", err)
		return
	}
	slog.Debug(LogMsgStoreClosed)
}
