package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osse101/TinyWins_Go/internal/logger"
)

// ObserveTx times a store transaction and counts it as failed when fn errors
func ObserveTx(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	TxDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		TxErrors.WithLabelValues(operation).Inc()
	}
	return err
}

// WriteTextfile dumps every registered metric to path in the text exposition
// format, for pickup by a node_exporter textfile collector. An empty path is a no-op.
func WriteTextfile(ctx context.Context, path string) error {
	return WriteTextfileFrom(ctx, prometheus.DefaultGatherer, path)
}

// WriteTextfileFrom is WriteTextfile for an explicit gatherer
func WriteTextfileFrom(ctx context.Context, g prometheus.Gatherer, path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		logger.FromContext(ctx).Warn(LogMsgMetricsWriteFailed, "path", path, "error", err)
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgMetricsWritten, "path", path)
	return nil
}
