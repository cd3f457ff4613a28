package logger

import (
	"io"
	"log/slog"
)

// Setup installs a CustomHandler as the default slog logger.
func Setup(w io.Writer, opts Options) *slog.Logger {
	l := slog.New(NewHandler(w, opts))
	slog.SetDefault(l)
	return l
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	slog.Info(msg, append([]any{slog.String("type", "sys")}, attrs...)...)
}

func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
