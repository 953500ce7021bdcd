package mail

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Newsroom/internal/pkg/redis"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(RendererConfig{FrontendURL: "https://news.example.com/", OTPTTLSeconds: 300})
	require.NoError(t, err)
	return r
}

type fakeSender struct {
	mu    sync.Mutex
	err   error
	calls []*Message
}

func (f *fakeSender) Send(_ context.Context, msg *Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, msg)
	return f.err
}

type memoryRetries struct {
	scheduled []Task
	at        []time.Time
	err       error
}

func (m *memoryRetries) Schedule(_ context.Context, task Task, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.scheduled = append(m.scheduled, task)
	m.at = append(m.at, at)
	return nil
}

func (m *memoryRetries) Due(context.Context, time.Time, int64) ([]Task, error) {
	return nil, nil
}

func TestRenderSubjectsAndRecipients(t *testing.T) {
	r := newRenderer(t)
	tests := []struct {
		task    Task
		subject string
		to      string
		snippet string
	}{
		{NewEmailVerificationTask("a@x.io", "Ali", "1234"), "Verify Your Email Address", "a@x.io", "Your 4-digit verification code: 1234"},
		{NewPasswordResetTask("b@x.io", "Bek", "5678"), "Reset Your Password", "b@x.io", "Your 4-digit password reset code: 5678"},
		{NewEmailChangeVerificationTask("new@x.io", "Dil", "9012"), "Verify Your New Email Address", "new@x.io", "9012"},
		{NewActivationInviteTask("c@x.io", "Zed", "42", "tok"), "Welcome to Your Brand", "c@x.io", "https://news.example.com/activate?uid=42&token=tok"},
		{NewOTPVerificationTask("d@x.io", "Oy", "777111"), "Your Sign-In Verification Code", "d@x.io", "valid for 5 minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.task.Name, func(t *testing.T) {
			msg, err := r.Render(tt.task)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, msg.Subject)
			assert.Equal(t, tt.to, msg.To)
			assert.Contains(t, msg.Text, tt.snippet)
			assert.True(t, strings.HasPrefix(msg.HTML, "<!doctype html>"))
			assert.Contains(t, msg.Text, "Hello "+tt.task.Args["first_name"])
		})
	}
}

func TestRenderOTPHeadersAndHTML(t *testing.T) {
	msg, err := newRenderer(t).Render(NewOTPVerificationTask("d@x.io", "Oy", "777111"))
	require.NoError(t, err)
	assert.Equal(t, "1", msg.Headers["X-Priority"])
	assert.Equal(t, "High", msg.Headers["X-MSMail-Priority"])
	assert.Contains(t, msg.HTML, "777111")
	assert.Contains(t, msg.HTML, "5 minutes")
	assert.Contains(t, msg.HTML, "Sign-In Verification")
	assert.Contains(t, msg.HTML, "If you didn&#39;t request this code")
}

func TestRenderEscapesUserInput(t *testing.T) {
	msg, err := newRenderer(t).Render(NewEmailVerificationTask("a@x.io", "<script>", "1234"))
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestRenderRejectsBadTasks(t *testing.T) {
	r := newRenderer(t)
	_, err := r.Render(Task{Name: "newsletter"})
	assert.Error(t, err)

	_, err = r.Render(Task{Name: TaskActivationInvite, Args: map[string]string{"email": "a@x.io"}})
	assert.Error(t, err)
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 60*time.Second, RetryDelay(0))
	assert.Equal(t, 120*time.Second, RetryDelay(1))
	assert.Equal(t, 240*time.Second, RetryDelay(2))
}

func TestWorkerSuccess(t *testing.T) {
	sender := &fakeSender{}
	retries := &memoryRetries{}
	w := NewWorker(newRenderer(t), sender, retries)

	require.NoError(t, w.Process(context.Background(), NewPasswordResetTask("b@x.io", "Bek", "5678")))
	assert.Len(t, sender.calls, 1)
	assert.Empty(t, retries.scheduled)
}

func TestWorkerSchedulesRetriesWithBackoff(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	retries := &memoryRetries{}
	w := NewWorker(newRenderer(t), sender, retries)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	task := NewEmailVerificationTask("a@x.io", "Ali", "1234")
	for i := 0; i <= MaxRetries; i++ {
		require.NoError(t, w.Process(context.Background(), task))
		if len(retries.scheduled) > i {
			task = retries.scheduled[i]
		}
	}

	require.Len(t, retries.scheduled, MaxRetries)
	assert.Equal(t, []int{1, 2, 3}, []int{retries.scheduled[0].Retries, retries.scheduled[1].Retries, retries.scheduled[2].Retries})
	assert.Equal(t, now.Add(60*time.Second), retries.at[0])
	assert.Equal(t, now.Add(120*time.Second), retries.at[1])
	assert.Equal(t, now.Add(240*time.Second), retries.at[2])
	assert.Len(t, sender.calls, MaxRetries+1)
}

func TestWorkerReportsScheduleFailure(t *testing.T) {
	w := NewWorker(newRenderer(t), &fakeSender{err: errors.New("smtp down")}, &memoryRetries{err: errors.New("redis down")})
	assert.Error(t, w.Process(context.Background(), NewPasswordResetTask("b@x.io", "Bek", "5678")))
}

func TestWorkerDropsUnrenderableTask(t *testing.T) {
	sender := &fakeSender{}
	w := NewWorker(newRenderer(t), sender, &memoryRetries{})
	assert.NoError(t, w.Process(context.Background(), Task{Name: "unknown"}))
	assert.Empty(t, sender.calls)
}

func TestLocalQueue(t *testing.T) {
	sender := &fakeSender{}
	q := NewLocalQueue(NewWorker(newRenderer(t), sender, &memoryRetries{}))

	require.NoError(t, q.Enqueue(context.Background(), NewOTPVerificationTask("d@x.io", "Oy", "123456")))
	q.Wait()
	assert.Len(t, sender.calls, 1)
}

func TestRedisRetryStore(t *testing.T) {
	mr := miniredis.RunT(t)
	redis.UseClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	store := NewRedisRetryStore()
	ctx := context.Background()
	now := time.Now()

	first := NewPasswordResetTask("b@x.io", "Bek", "5678")
	first.ID = "1"
	later := NewPasswordResetTask("c@x.io", "Cem", "0000")
	later.ID = "2"
	require.NoError(t, store.Schedule(ctx, first, now.Add(-time.Second)))
	require.NoError(t, store.Schedule(ctx, later, now.Add(time.Hour)))

	due, err := store.Due(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "1", due[0].ID)

	due, err = store.Due(ctx, now.Add(2*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "c@x.io", due[0].Recipient())
}
