package logger

import (
	"io"
	log "log/slog"
	"os"
	"strings"
)

// LogWriter destination of the access log
var LogWriter io.Writer = os.Stdout

var stdoutHandler log.Handler

// ParseLevel maps a config level name to slog, unknown names mean info.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error", "critical":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

// InitLogger installs the JSON stdout logger as the slog default.
func InitLogger(level string) {
	stdoutHandler = log.NewJSONHandler(os.Stdout, &log.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: true,
	})
	log.SetDefault(log.New(&ContextHandler{stdoutHandler}))
}

// AttachEntryStore tees records into store once persistence is available.
func AttachEntryStore(store EntryStore, persistLevel string) {
	if stdoutHandler == nil {
		InitLogger("info")
	}
	tee := NewTeeHandler(stdoutHandler, NewEntryHandler(store, ParseLevel(persistLevel)))
	log.SetDefault(log.New(&ContextHandler{tee}))
}
