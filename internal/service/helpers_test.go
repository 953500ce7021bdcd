package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"Newsroom/internal/api/config"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/audit"
	"Newsroom/internal/pkg/database"
	"Newsroom/internal/pkg/mail"
	"Newsroom/internal/pkg/redis"
	"Newsroom/internal/pkg/security"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.NewGormDB(&config.DBConfig{Driver: "sqlite", DSN: dsn, MaxOpen: 1})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redis.UseClient(client)
	return mr
}

// recordingEmail keeps every task instead of delivering it.
type recordingEmail struct {
	mu    sync.Mutex
	tasks []mail.Task
}

func (r *recordingEmail) Send(_ context.Context, task mail.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
}

func (r *recordingEmail) last(t *testing.T) mail.Task {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.tasks, "no email sent")
	return r.tasks[len(r.tasks)-1]
}

type recordingSink struct {
	messages []string
}

func (s *recordingSink) Write(_ context.Context, message string) {
	s.messages = append(s.messages, message)
}

func newAuditLogger() (*audit.Logger, *recordingSink) {
	sink := &recordingSink{}
	return audit.NewLogger(sink), sink
}

func seedUser(t *testing.T, db *gorm.DB, u *model.User, password string) *model.User {
	t.Helper()
	if password != "" {
		hash, err := security.HashPassword(password)
		require.NoError(t, err)
		u.Password = hash
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

var editor = audit.Actor{Username: "editor", Email: "editor@example.com"}
