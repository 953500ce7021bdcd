package job

import (
	"Newsroom/internal/pkg/logger"
	"Newsroom/internal/pkg/mail"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	emailRetryBatch = 100
	requeueBackoff  = 30 * time.Second
)

// EmailRetryJob moves due retries from the retry store back onto the queue.
type EmailRetryJob struct {
	retries mail.RetryStore
	queue   mail.Queue
	now     func() time.Time
}

func NewEmailRetryJob(retries mail.RetryStore, queue mail.Queue) *EmailRetryJob {
	return &EmailRetryJob{retries: retries, queue: queue, now: time.Now}
}

func (s *EmailRetryJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-email-retry-"+uuid.NewString())
	s.pump(ctx)
}

func (s *EmailRetryJob) pump(ctx context.Context) int {
	tasks, err := s.retries.Due(ctx, s.now(), emailRetryBatch)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load due email retries", "err", err)
		return 0
	}

	moved := 0
	for _, task := range tasks {
		if err = s.queue.Enqueue(ctx, task); err != nil {
			log.ErrorContext(ctx, "Failed to requeue email task", "task", task.Name, "id", task.ID, "err", err)
			if err = s.retries.Schedule(ctx, task, s.now().Add(requeueBackoff)); err != nil {
				log.ErrorContext(ctx, "Email retry lost", "task", task.Name, "id", task.ID, "err", err)
			}
			continue
		}
		moved++
	}
	if moved > 0 {
		log.InfoContext(ctx, "Email retries requeued", "count", moved)
	}
	return moved
}
