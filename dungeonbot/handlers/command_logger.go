package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/handler"
)

const (
	slowCommand    = 2 * time.Second
	commandTimeout = 10 * time.Second
)

// WrapWithLogging wraps a command handler with start, completion and timeout logs.
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		user := e.User()

		slog.Debug("Command started",
			slog.String("type", "cmd"),
			slog.String("name", name),
			slog.String("user_id", user.ID.String()),
			slog.String("user_name", user.Username),
			slog.String("channel_id", e.ChannelID().String()),
		)

		done := make(chan error, 1)
		go func() {
			done <- h(e)
		}()

		select {
		case err := <-done:
			duration := time.Since(start)
			attrs := []any{
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.String("user_id", user.ID.String()),
				slog.String("user_name", user.Username),
				slog.Duration("took", duration),
			}

			switch {
			case err != nil:
				slog.Error("Command failed", append(attrs,
					slog.Any("error", err),
					slog.String("status", "failed"),
				)...)
			case duration > slowCommand:
				slog.Warn("Command executed slowly", append(attrs,
					slog.String("status", "slow"),
				)...)
			default:
				slog.Info("Command completed", append(attrs,
					slog.String("status", "success"),
				)...)
			}
			return err

		case <-time.After(commandTimeout):
			slog.Error("Command timed out",
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.String("user_id", user.ID.String()),
				slog.String("user_name", user.Username),
				slog.String("status", "timeout"),
				slog.Duration("timeout", commandTimeout),
			)
			return fmt.Errorf("command %s timed out after %s", name, commandTimeout)
		}
	}
}
