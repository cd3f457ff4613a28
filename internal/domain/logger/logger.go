package logger

import (
	"log/slog"
	"time"
)

// SlowQuery is the duration above which successful queries are logged as warnings.
const SlowQuery = 500 * time.Millisecond

type QueryLogger struct {
	Operation string
	Query     string
	Args      []any
	StartTime time.Time
}

func NewQueryLogger(operation, query string, args ...any) *QueryLogger {
	return &QueryLogger{
		Operation: operation,
		Query:     query,
		Args:      args,
		StartTime: time.Now(),
	}
}

func (l *QueryLogger) Log(err error, rowsAffected int64) {
	duration := time.Since(l.StartTime)
	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", l.Operation),
		slog.String("query", l.Query),
		slog.Any("args", l.Args),
		slog.Duration("took", duration),
	}

	switch {
	case err != nil:
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
	case duration > SlowQuery:
		slog.Warn("Query executed slowly", append(attrs, slog.Int64("affected_rows", rowsAffected))...)
	default:
		slog.Debug("Query executed", append(attrs, slog.Int64("affected_rows", rowsAffected))...)
	}
}
