package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

const prefix = "[Dungeon]"

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
)

// Gateway and rest chatter from disgo that drowns out command logs.
var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
	"binary message received",
	"received gateway message",
	"opening gateway connection",
	"locking gateway rate limiter",
	"unlocking gateway rate limiter",
	"sending gateway command",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"sending heartbeat",
}

// Attributes rendered inline in the message rather than as key=value pairs.
var inlineAttrs = map[string]bool{
	"type":           true,
	"name":           true,
	"user_name":      true,
	"status":         true,
	"error":          true,
	"error_location": true,
	"took":           true,
}

type Options struct {
	Level     slog.Leveler
	Color     bool
	AddSource bool
}

type CustomHandler struct {
	opts   Options
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewHandler(w io.Writer, opts Options) *CustomHandler {
	if w == nil {
		w = os.Stdout
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &CustomHandler{
		opts: opts,
		out:  w,
		mu:   &sync.Mutex{},
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	values := make(map[string]slog.Value)
	var extra []slog.Attr
	collect := func(a slog.Attr) bool {
		if inlineAttrs[a.Key] {
			values[a.Key] = a.Value
		} else {
			extra = append(extra, a)
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	message := r.Message
	if r.Level >= slog.LevelError {
		location := stringValue(values, "error_location")
		if location == "" && h.opts.AddSource && r.PC != 0 {
			location = sourceLocation(r.PC)
		}
		if location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
	}
	if v, ok := values["error"]; ok {
		message = fmt.Sprintf("%s: %v", message, v.Any())
	}

	if name, user := stringValue(values, "name"), stringValue(values, "user_name"); name != "" && user != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, name, user)
	}
	if status := stringValue(values, "status"); status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}
	if took, ok := values["took"]; ok && took.Kind() == slog.KindDuration {
		message = fmt.Sprintf("%s (took %s)", message, took.Duration().Round(time.Microsecond))
	}

	var b strings.Builder
	groupPrefix := strings.Join(h.groups, ".")
	for _, a := range extra {
		key := a.Key
		if groupPrefix != "" {
			key = groupPrefix + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value)
	}

	levelColor, levelText := levelStyle(r.Level)
	timestamp := r.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var line string
	if h.opts.Color {
		line = fmt.Sprintf("%s%s [%s] [%s%s%s] [%s] %s%s%s\n",
			colorWhite, prefix, timestamp.Format("15:04:05"),
			levelColor, levelText, colorWhite,
			logType(values), message, b.String(), colorReset)
	} else {
		line = fmt.Sprintf("%s [%s] [%s] [%s] %s%s\n",
			prefix, timestamp.Format("15:04:05"), levelText, logType(values), message, b.String())
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line)
	return err
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return colorRed, "ERROR"
	case level >= slog.LevelWarn:
		return colorYellow, "WARN"
	case level >= slog.LevelInfo:
		return colorGreen, "INFO"
	default:
		return colorPurple, "DEBUG"
	}
}

func shouldSkipLog(r *slog.Record) bool {
	msg := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func logType(values map[string]slog.Value) LogType {
	switch stringValue(values, "type") {
	case "cmd":
		return TypeCommand
	case "db":
		return TypeDB
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

func stringValue(values map[string]slog.Value, key string) string {
	v, ok := values[key]
	if !ok {
		return ""
	}
	return v.String()
}

func sourceLocation(pc uintptr) string {
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}
