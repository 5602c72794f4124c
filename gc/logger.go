// ABOUTME: Structured logging for collection cycles
// ABOUTME: Wraps slog.Logger with phase-specific helpers and consistent field names

package gc

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with collector-specific context.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithHeap tags the logger with the heap geometry of one cycle.
func (l *Logger) WithHeap(heapSize, blockSize int) *Logger {
	return &Logger{
		Logger: l.Logger.With("heap_size", heapSize, "block_size", blockSize),
	}
}

// LogPartition logs the outcome of the partition phase.
func (l *Logger) LogPartition(ctx context.Context, objects, spanning, emptyRegions int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "partition failed",
			"objects", objects,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "partition completed",
		"objects", objects,
		"spanning", spanning,
		"empty_regions", emptyRegions,
	)
}

// LogOversubscribed warns about a region charged beyond its capacity.
func (l *Logger) LogOversubscribed(ctx context.Context, regionIndex, total, charged int) {
	l.WarnContext(ctx, "region over-subscribed",
		"region", regionIndex,
		"total", total,
		"charged", charged,
	)
}

// LogTrace logs the outcome of the mark phase.
func (l *Logger) LogTrace(ctx context.Context, roots, edges int, live uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "mark failed",
			"roots", roots,
			"edges", edges,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "mark completed",
		"roots", roots,
		"edges", edges,
		"live", live,
	)
}

// LogSweep logs the outcome of the sweep phase.
func (l *Logger) LogSweep(ctx context.Context, stats SweepStats) {
	l.DebugContext(ctx, "sweep completed",
		"swept", stats.Swept,
		"reclaimed_bytes", stats.ReclaimedBytes,
	)
}

// LogCompact logs the outcome of the compaction phase.
func (l *Logger) LogCompact(ctx context.Context, stats CompactStats) {
	l.DebugContext(ctx, "compaction completed",
		"target_regions", len(stats.Targets),
		"moved", len(stats.Relocations),
		"moved_bytes", stats.MovedBytes,
	)
}

// LogCycle logs a finished collection cycle.
func (l *Logger) LogCycle(ctx context.Context, stats Stats) {
	l.InfoContext(ctx, "collection completed",
		"objects", stats.Objects,
		"live", stats.Live,
		"swept", stats.Swept,
		"moved", stats.Moved,
	)
}
