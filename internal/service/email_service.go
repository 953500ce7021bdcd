package service

import (
	"Newsroom/internal/pkg/mail"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// EmailService hands email tasks to the queue without waiting for delivery.
type EmailService interface {
	Send(ctx context.Context, task mail.Task)
}

type EmailServiceImpl struct {
	queue mail.Queue
}

func NewEmailService(queue mail.Queue) EmailService {
	return &EmailServiceImpl{queue: queue}
}

// Send never fails the caller, enqueue errors are only logged.
func (s *EmailServiceImpl) Send(ctx context.Context, task mail.Task) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if err := s.queue.Enqueue(ctx, task); err != nil {
		log.ErrorContext(ctx, "Failed to enqueue email task", "task", task.Name, "id", task.ID, "err", err)
		return
	}
	log.InfoContext(ctx, "Email task enqueued", "task", task.Name, "id", task.ID)
}
