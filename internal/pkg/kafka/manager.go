package kafka

import (
	"Newsroom/internal/api/config"
	"Newsroom/internal/pkg/mail"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager owns the consumer groups of the process.
type ConsumerManager struct {
	emailConsumer sarama.ConsumerGroup
	emailHandler  sarama.ConsumerGroupHandler
	emailTopic    string
}

func NewConsumerManager(cfg *config.Config, worker *mail.Worker) (*ConsumerManager, error) {
	emailConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaEmail.GroupID, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return &ConsumerManager{
		emailConsumer: emailConsumer,
		emailHandler:  NewEmailHandler(worker),
		emailTopic:    cfg.KafkaEmail.Topic,
	}, nil
}

// Start consumes until ctx is cancelled, then closes the groups.
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.emailConsumer.Errors() {
			log.Error("Email consumer group error", "err", err)
		}
	}()

	go func() {
		log.Info("Email consumer started", "topic", m.emailTopic)
		for {
			if err := m.emailConsumer.Consume(ctx, []string{m.emailTopic}, m.emailHandler); err != nil {
				log.Error("Error from email consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka manager shutting down...")

	if err := m.emailConsumer.Close(); err != nil {
		log.Error("Failed to close email consumer", "err", err)
	}
	return nil
}
