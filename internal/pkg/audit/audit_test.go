package audit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type article struct {
	ID        uint64
	Title     string
	Slug      string
	Status    string
	Tags      []string
	Published *time.Time
	Updated   time.Time
}

func (a *article) AuditID() any                 { return a.ID }
func (a *article) AuditTitle() string           { return a.Title }
func (a *article) AuditSlug() string            { return a.Slug }
func (a *article) AuditStatus() string          { return a.Status }
func (a *article) AuditPublishedAt() *time.Time { return a.Published }

type section struct {
	ID   uint64
	Name string
}

func (s *section) AuditID() any      { return s.ID }
func (s *section) AuditName() string { return s.Name }

var articleFields = []Field[article]{
	{Name: "id", Get: func(a *article) (any, error) { return a.ID, nil }},
	{Name: "title", Get: func(a *article) (any, error) { return a.Title, nil }},
	{Name: "slug", Get: func(a *article) (any, error) { return a.Slug, nil }},
	{Name: "status", Get: func(a *article) (any, error) { return a.Status, nil }},
	{Name: "tags", Get: func(a *article) (any, error) { return a.Tags, nil }},
	{Name: "published_at", Get: func(a *article) (any, error) { return a.Published, nil }},
	{Name: "updated_at", Get: func(a *article) (any, error) { return a.Updated, nil }},
}

type recordingSink struct {
	messages []string
}

func (s *recordingSink) Write(_ context.Context, message string) {
	s.messages = append(s.messages, message)
}

func fixedLogger(sink Sink) *Logger {
	l := NewLogger(sink)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local) }
	return l
}

func TestDiffExcludedFieldsOnly(t *testing.T) {
	before := &article{ID: 1, Title: "a", Updated: time.Now()}
	after := &article{ID: 2, Title: "a", Updated: time.Now().Add(time.Hour)}

	assert.True(t, Diff(before, after, articleFields).Empty())
}

func TestDiffNilBefore(t *testing.T) {
	assert.Empty(t, Diff(nil, &article{Title: "x"}, articleFields))
}

func TestDiffDeclarationOrder(t *testing.T) {
	now := time.Now()
	before := &article{Title: "old", Slug: "old", Status: "draft"}
	after := &article{Title: "new", Slug: "old", Status: "published", Published: &now, Tags: []string{"x"}}

	changes := Diff(before, after, articleFields)
	require.Len(t, changes, 4)
	assert.Equal(t, []string{"title", "status", "tags", "published_at"},
		[]string{changes[0].Field, changes[1].Field, changes[2].Field, changes[3].Field})
	assert.Equal(t, "old", changes[0].Old)
	assert.Equal(t, "new", changes[0].New)
	assert.True(t, changes.Has("status"))
	assert.False(t, changes.Has("slug"))
}

func TestDiffSkipsFailingGetter(t *testing.T) {
	fields := []Field[article]{
		{Name: "title", Get: func(a *article) (any, error) {
			if a.Title == "broken" {
				return nil, assert.AnError
			}
			return a.Title, nil
		}},
		{Name: "slug", Get: func(a *article) (any, error) { return a.Slug, nil }},
	}
	changes := Diff(&article{Title: "broken", Slug: "a"}, &article{Title: "fine", Slug: "b"}, fields)
	require.Len(t, changes, 1)
	assert.Equal(t, "slug", changes[0].Field)
}

func TestDiffEqualPointers(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	same := at
	changes := Diff(&article{Published: &at}, &article{Published: &same}, articleFields)
	assert.True(t, changes.Empty())
}

func TestLogActionUpdatedFormat(t *testing.T) {
	sink := &recordingSink{}
	logger := fixedLogger(sink)
	published := time.Date(2026, 1, 1, 9, 0, 0, 0, time.Local)

	entity := &article{ID: 42, Title: "Hello", Slug: "hello", Status: "published", Published: &published}
	changes := ChangeSet{{Field: "status", Old: "draft", New: "published"}}
	user := Actor{Username: "editor", Email: "e@example.com", FirstName: "Ann", LastName: "Lee"}

	msg, err := logger.LogAction(context.Background(), ActionUpdated, "Post", entity, user, changes, "✨ Post published successfully!")
	require.NoError(t, err)

	expected := strings.Join([]string{
		"",
		banner,
		"[UPDATED] UPDATED | Post",
		banner,
		"Timestamp: 2026-01-02 15:04:05",
		"User: Ann Lee (e@example.com)",
		"ID: 42",
		"Title: Hello",
		"Slug: hello",
		"Status: published",
		"Published: 2026-01-01 09:00:00",
		"",
		"Changes:",
		"  • status:",
		"      Old: draft",
		"      New: published",
		"",
		"Info: ✨ Post published successfully!",
		banner,
		"",
	}, "\n")
	assert.Equal(t, expected, msg)
	require.Len(t, sink.messages, 1)
	assert.Equal(t, msg, sink.messages[0])
}

func TestLogActionChangesOnlyForUpdates(t *testing.T) {
	logger := fixedLogger(&recordingSink{})
	changes := ChangeSet{{Field: "name", Old: "a", New: "b"}}

	msg, err := logger.LogAction(context.Background(), ActionCreated, "Category", &section{ID: 3, Name: "News"}, Actor{Username: "root"}, changes, "")
	require.NoError(t, err)
	assert.NotContains(t, msg, "Changes:")
	assert.Contains(t, msg, "[CREATED] CREATED | Category")
	assert.Contains(t, msg, "User: root ()")
	assert.Contains(t, msg, "Name: News")
	assert.NotContains(t, msg, "Published:")
	assert.NotContains(t, msg, "Info:")
}

func TestLogActionUnknownActionAndDraft(t *testing.T) {
	logger := fixedLogger(&recordingSink{})
	msg, err := logger.LogAction(context.Background(), "archive", "Post", &article{ID: 1, Title: "t"}, Actor{Username: "u"}, nil, "")
	require.NoError(t, err)
	assert.Contains(t, msg, "[ACTION] ARCHIVE | Post")
	assert.Contains(t, msg, "Published: Not published")
}

func TestLogActionPanicBecomesError(t *testing.T) {
	logger := NewLogger(&recordingSink{})
	logger.now = func() time.Time { panic("clock broken") }

	msg, err := logger.LogAction(context.Background(), ActionDeleted, "Post", &article{}, Actor{}, nil, "")
	assert.Error(t, err)
	assert.Empty(t, msg)
}

func TestLogBulkAction(t *testing.T) {
	sink := &recordingSink{}
	logger := fixedLogger(sink)

	msg, err := logger.LogBulkAction(context.Background(), "DELETE", "Post", 3, Actor{Username: "root", Email: "r@x.io"}, "Bulk deleted 3 posts")
	require.NoError(t, err)

	expected := strings.Join([]string{
		"",
		banner,
		"[ACTION] BULK DELETE | Post",
		banner,
		"Timestamp: 2026-01-02 15:04:05",
		"User: root (r@x.io)",
		"Items Affected: 3",
		"Query: Bulk deleted 3 posts",
		banner,
		"",
	}, "\n")
	assert.Equal(t, expected, msg)
}

func TestFormatValue(t *testing.T) {
	var nilTime *time.Time
	title := "Short title"
	at := time.Date(2025, 12, 31, 23, 59, 1, 0, time.UTC)

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "nil", value: nil, expected: "None"},
		{name: "typed nil pointer", value: nilTime, expected: "None"},
		{name: "true", value: true, expected: "Yes"},
		{name: "false", value: false, expected: "No"},
		{name: "slice", value: []string{"a", "b"}, expected: "[2 items]"},
		{name: "array", value: [3]int{}, expected: "[3 items]"},
		{name: "map", value: map[string]int{"a": 1}, expected: "{...} (1 keys)"},
		{name: "time", value: at, expected: "2025-12-31 23:59:01"},
		{name: "time pointer", value: &at, expected: "2025-12-31 23:59:01"},
		{name: "string pointer", value: &title, expected: "Short title"},
		{name: "number", value: uint64(7), expected: "7"},
		{name: "exactly fifty", value: strings.Repeat("a", 50), expected: strings.Repeat("a", 50)},
		{name: "long", value: strings.Repeat("b", 51), expected: strings.Repeat("b", 47) + "..."},
		{name: "long unicode", value: strings.Repeat("ж", 60), expected: strings.Repeat("ж", 47) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.value))
		})
	}
}
