package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"Newsroom/internal/api/dto"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/mail"
	"Newsroom/internal/pkg/redis"
	"Newsroom/internal/repository"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redis.UseClient(client)
	return mr
}

type recordingQueue struct {
	tasks []mail.Task
	err   error
}

func (q *recordingQueue) Enqueue(_ context.Context, task mail.Task) error {
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, task)
	return nil
}

func TestEmailRetryPumpMovesDueTasks(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store := mail.NewRedisRetryStore()

	due := mail.NewPasswordResetTask("a@example.com", "Anna", "1234")
	later := mail.NewOTPVerificationTask("b@example.com", "Bek", "123456")
	require.NoError(t, store.Schedule(ctx, due, now.Add(-time.Minute)))
	require.NoError(t, store.Schedule(ctx, later, now.Add(time.Hour)))

	queue := &recordingQueue{}
	job := NewEmailRetryJob(store, queue)
	job.now = func() time.Time { return now }

	assert.Equal(t, 1, job.pump(ctx))
	require.Len(t, queue.tasks, 1)
	assert.Equal(t, mail.TaskPasswordReset, queue.tasks[0].Name)

	// nothing is due twice
	assert.Zero(t, job.pump(ctx))
}

func TestEmailRetryPumpReschedulesOnQueueFailure(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store := mail.NewRedisRetryStore()
	task := mail.NewEmailVerificationTask("a@example.com", "Anna", "4321")
	require.NoError(t, store.Schedule(ctx, task, now.Add(-time.Second)))

	queue := &recordingQueue{err: errors.New("broker down")}
	job := NewEmailRetryJob(store, queue)
	job.now = func() time.Time { return now }

	assert.Zero(t, job.pump(ctx))

	back, err := store.Due(ctx, now.Add(requeueBackoff), 10)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, task.Args, back[0].Args)
}

type countingLogService struct {
	days  []int
	calls int
}

func (s *countingLogService) ListLogEntries(context.Context, *dto.LogEntryFilter, repository.Page) ([]*dto.LogEntryDTO, int64, error) {
	return nil, 0, nil
}
func (s *countingLogService) GetLogEntry(context.Context, uint64) (*dto.LogEntryDTO, error) {
	return nil, nil
}
func (s *countingLogService) DeleteLogEntry(context.Context, uint64) error { return nil }
func (s *countingLogService) PurgeOlderThan(_ context.Context, days int) (int64, error) {
	s.calls++
	s.days = append(s.days, days)
	return 0, nil
}

func TestLogRetentionJob(t *testing.T) {
	mr := setupRedis(t)
	svc := &countingLogService{}

	NewLogRetentionJob(svc, 0).Run()
	assert.Zero(t, svc.calls)

	NewLogRetentionJob(svc, 30).Run()
	assert.Equal(t, []int{30}, svc.days)
	assert.False(t, mr.Exists(consts.LogRetentionLock))

	// another replica holds the lock
	require.NoError(t, mr.Set(consts.LogRetentionLock, "other"))
	NewLogRetentionJob(svc, 30).Run()
	assert.Equal(t, 1, svc.calls)
}

type countingReindex struct {
	calls int
}

func (s *countingReindex) Reindex(context.Context) (int, error) {
	s.calls++
	return 3, nil
}

func TestSearchReindexJobSingleFlight(t *testing.T) {
	mr := setupRedis(t)
	svc := &countingReindex{}

	NewSearchReindexJob(svc).Run()
	assert.Equal(t, 1, svc.calls)
	assert.False(t, mr.Exists(consts.SearchReindexLock))

	require.NoError(t, mr.Set(consts.SearchReindexLock, "other"))
	NewSearchReindexJob(svc).Run()
	assert.Equal(t, 1, svc.calls)
}
