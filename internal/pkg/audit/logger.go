package audit

import (
	"context"
	"fmt"
	log "log/slog"
	"reflect"
	"strings"
	"time"
)

const (
	TimeLayout = "2006-01-02 15:04:05"

	ActionCreated = "CREATED"
	ActionUpdated = "UPDATED"
	ActionDeleted = "DELETED"

	// LoggerName is attached to every audit record so the entry handler persists it.
	LoggerName = "admin"

	maxValueRunes = 50
	cutValueRunes = 47
)

var banner = strings.Repeat("=", 80)

var actionTags = map[string]string{
	ActionCreated: "[CREATED]",
	ActionUpdated: "[UPDATED]",
	ActionDeleted: "[DELETED]",
}

// Sink receives rendered audit records.
type Sink interface {
	Write(ctx context.Context, message string)
}

type slogSink struct {
	logger *log.Logger
}

// NewSlogSink writes audit records at INFO with logger=admin.
func NewSlogSink(logger *log.Logger) Sink {
	if logger == nil {
		logger = log.Default()
	}
	return &slogSink{logger: logger.With("logger", LoggerName)}
}

func (s *slogSink) Write(ctx context.Context, message string) {
	s.logger.InfoContext(ctx, message)
}

// Actor is the user performing an admin write.
type Actor struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

func (a Actor) display() string {
	if a.FirstName != "" {
		return a.FirstName + " " + a.LastName
	}
	return a.Username
}

// Optional accessors an audited entity may expose.
type (
	identified  interface{ AuditID() any }
	titled      interface{ AuditTitle() string }
	named       interface{ AuditName() string }
	slugged     interface{ AuditSlug() string }
	statused    interface{ AuditStatus() string }
	publishable interface{ AuditPublishedAt() *time.Time }
)

type Logger struct {
	sink Sink
	now  func() time.Time
}

func NewLogger(sink Sink) *Logger {
	return &Logger{sink: sink, now: time.Now}
}

// LogAction renders one admin write and hands it to the sink.
func (l *Logger) LogAction(ctx context.Context, action, model string, entity any, user Actor, changes ChangeSet, extra string) (message string, err error) {
	defer func() {
		if r := recover(); r != nil {
			message, err = "", fmt.Errorf("audit %s %s: %v", action, model, r)
		}
	}()

	lines := []string{
		"\n" + banner,
		fmt.Sprintf("%s %s | %s", tagFor(action), strings.ToUpper(action), model),
		banner,
		"Timestamp: " + l.now().Format(TimeLayout),
		fmt.Sprintf("User: %s (%s)", user.display(), user.Email),
	}

	if e, ok := entity.(identified); ok {
		lines = append(lines, fmt.Sprintf("ID: %v", e.AuditID()))
	} else {
		lines = append(lines, "ID: None")
	}
	if e, ok := entity.(titled); ok {
		lines = append(lines, "Title: "+e.AuditTitle())
	} else if e, ok := entity.(named); ok {
		lines = append(lines, "Name: "+e.AuditName())
	}
	if e, ok := entity.(slugged); ok {
		lines = append(lines, "Slug: "+e.AuditSlug())
	}
	if e, ok := entity.(statused); ok {
		lines = append(lines, "Status: "+e.AuditStatus())
	}
	if e, ok := entity.(publishable); ok {
		published := "Not published"
		if at := e.AuditPublishedAt(); at != nil {
			published = at.Format(TimeLayout)
		}
		lines = append(lines, "Published: "+published)
	}

	if len(changes) > 0 && action == ActionUpdated {
		lines = append(lines, "\nChanges:")
		for _, c := range changes {
			lines = append(lines,
				fmt.Sprintf("  • %s:", c.Field),
				"      Old: "+FormatValue(c.Old),
				"      New: "+FormatValue(c.New),
			)
		}
	}

	if extra != "" {
		lines = append(lines, "\nInfo: "+extra)
	}
	lines = append(lines, banner+"\n")

	message = strings.Join(lines, "\n")
	l.sink.Write(ctx, message)
	return message, nil
}

// LogBulkAction renders a write that touched many rows at once.
func (l *Logger) LogBulkAction(ctx context.Context, action, model string, count int, user Actor, query string) (message string, err error) {
	defer func() {
		if r := recover(); r != nil {
			message, err = "", fmt.Errorf("audit bulk %s %s: %v", action, model, r)
		}
	}()

	lines := []string{
		"\n" + banner,
		fmt.Sprintf("%s BULK %s | %s", tagFor(action), strings.ToUpper(action), model),
		banner,
		"Timestamp: " + l.now().Format(TimeLayout),
		fmt.Sprintf("User: %s (%s)", user.display(), user.Email),
		fmt.Sprintf("Items Affected: %d", count),
	}
	if query != "" {
		lines = append(lines, "Query: "+query)
	}
	lines = append(lines, banner+"\n")

	message = strings.Join(lines, "\n")
	l.sink.Write(ctx, message)
	return message, nil
}

func tagFor(action string) string {
	if tag, ok := actionTags[action]; ok {
		return tag
	}
	return "[ACTION]"
}

// FormatValue renders a diffed value for the audit record.
func FormatValue(v any) string {
	if v == nil {
		return "None"
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "None"
		}
		rv = rv.Elem()
	}

	switch val := rv.Interface().(type) {
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case time.Time:
		return val.Format(TimeLayout)
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("[%d items]", rv.Len())
	case reflect.Map:
		return fmt.Sprintf("{...} (%d keys)", rv.Len())
	}

	s := fmt.Sprint(rv.Interface())
	if runes := []rune(s); len(runes) > maxValueRunes {
		return string(runes[:cutValueRunes]) + "..."
	}
	return s
}
