package kafka

import (
	"Newsroom/internal/pkg/mail"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EmailHandler consumes email tasks and hands them to the mail worker.
type EmailHandler struct {
	worker *mail.Worker
}

func NewEmailHandler(worker *mail.Worker) *EmailHandler {
	return &EmailHandler{worker: worker}
}

func (s *EmailHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("email consumer setup")
	return nil
}

func (s *EmailHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("email consumer cleanup")
	return nil
}

func (s *EmailHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	if err := pullMessageBatch(session, claim, s.logic); err != nil {
		log.Error("email consume claim error", "err", err)
		return err
	}
	return nil
}

func (s *EmailHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var task mail.Task
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		log.ErrorContext(ctx, "Dropping undecodable email task", "offset", msg.Offset, "partition", msg.Partition, "err", err)
		return nil
	}
	return s.worker.Process(ctx, task)
}
