package mail

import (
	"context"
	log "log/slog"
	"time"

	"github.com/pkg/errors"
)

// RetryStore holds tasks waiting for their next attempt.
type RetryStore interface {
	Schedule(ctx context.Context, task Task, at time.Time) error
	Due(ctx context.Context, now time.Time, limit int64) ([]Task, error)
}

// Worker runs one delivery attempt and decides what happens on failure.
type Worker struct {
	renderer *Renderer
	sender   Sender
	retries  RetryStore
	now      func() time.Time
}

func NewWorker(renderer *Renderer, sender Sender, retries RetryStore) *Worker {
	return &Worker{renderer: renderer, sender: sender, retries: retries, now: time.Now}
}

// Process delivers task. Send failures are rescheduled or dropped as terminal,
// the returned error only reports that scheduling the retry itself failed.
func (w *Worker) Process(ctx context.Context, task Task) error {
	msg, err := w.renderer.Render(task)
	if err != nil {
		log.ErrorContext(ctx, "Email task rejected", "task", task.Name, "id", task.ID, "err", err)
		return nil
	}

	sendErr := w.sender.Send(ctx, msg)
	if sendErr == nil {
		log.InfoContext(ctx, "Email sent", "task", task.Name, "id", task.ID, "to", msg.To, "retries", task.Retries)
		return nil
	}

	log.ErrorContext(ctx, "Failed to send email", "task", task.Name, "id", task.ID, "to", msg.To, "retries", task.Retries, "err", sendErr)
	if !task.CanRetry() {
		log.ErrorContext(ctx, "Email task exhausted retries", "task", task.Name, "id", task.ID, "to", msg.To, "max_retries", MaxRetries, "err", sendErr)
		return nil
	}

	at := w.now().Add(RetryDelay(task.Retries))
	next := task
	next.Retries++
	if err = w.retries.Schedule(ctx, next, at); err != nil {
		return errors.Wrapf(err, "schedule retry %d of %s", next.Retries, task.Name)
	}
	log.WarnContext(ctx, "Email retry scheduled", "task", task.Name, "id", task.ID, "retry", next.Retries, "at", at)
	return nil
}
