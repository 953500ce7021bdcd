package logger

import (
	"context"
	"fmt"
	log "log/slog"
	"runtime"
	"strings"

	"Newsroom/internal/model"
)

// LoggerAttr names the logical logger of a record, e.g. logger=admin.
const LoggerAttr = "logger"

const defaultLoggerName = "newsroom"

// EntryStore persists log records.
type EntryStore interface {
	SaveLogEntry(ctx context.Context, entry *model.LogEntry) error
}

type persistingKey struct{}

// EntryHandler turns records into log entries: everything at or above the
// persist level plus any record tagged with a logger attribute.
type EntryHandler struct {
	store  EntryStore
	level  log.Leveler
	attrs  []log.Attr
	groups []string
}

func NewEntryHandler(store EntryStore, level log.Leveler) *EntryHandler {
	return &EntryHandler{store: store, level: level}
}

func (h *EntryHandler) Enabled(_ context.Context, _ log.Level) bool {
	return true
}

func (h *EntryHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Value(persistingKey{}) != nil {
		return nil
	}

	loggerName, tagged := h.loggerName(r)
	if r.Level < h.level.Level() && !tagged {
		return nil
	}

	entry := &model.LogEntry{
		Timestamp:  r.Time,
		Level:      r.Level.String(),
		LoggerName: loggerName,
		Message:    r.Message,
		Exception:  h.exception(r),
	}
	if r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := frames.Next()
		entry.Pathname = frame.File
		entry.LineNo = frame.Line
	}

	ctx = context.WithValue(context.WithoutCancel(ctx), persistingKey{}, true)
	if err := h.store.SaveLogEntry(ctx, entry); err != nil {
		return fmt.Errorf("persist log entry: %w", err)
	}
	return nil
}

func (h *EntryHandler) loggerName(r log.Record) (string, bool) {
	for _, a := range h.attrs {
		if a.Key == LoggerAttr {
			return a.Value.String(), true
		}
	}
	name, tagged := defaultLoggerName, false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == LoggerAttr {
			name, tagged = a.Value.String(), true
			return false
		}
		return true
	})
	return name, tagged
}

func (h *EntryHandler) exception(r log.Record) string {
	var parts []string
	collect := func(a log.Attr) {
		if a.Key == "err" || a.Key == "error" || a.Key == "panic" {
			parts = append(parts, a.Value.String())
		}
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a log.Attr) bool {
		collect(a)
		return true
	})
	return strings.Join(parts, "\n")
}

func (h *EntryHandler) WithAttrs(attrs []log.Attr) log.Handler {
	next := *h
	next.attrs = append(append([]log.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *EntryHandler) WithGroup(name string) log.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}
