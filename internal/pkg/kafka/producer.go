package kafka

import (
	"Newsroom/internal/api/config"
	"Newsroom/internal/pkg/mail"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Producer publishes email tasks onto the email topic.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg *config.Config) (*Producer, error) {
	p, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, errors.Wrap(err, "create kafka producer")
	}
	return NewProducerWith(p, cfg.KafkaEmail.Topic), nil
}

// NewProducerWith wraps an existing sarama producer.
func NewProducerWith(p sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: p, topic: topic}
}

// Enqueue keys messages by recipient so one inbox keeps its order.
func (p *Producer) Enqueue(ctx context.Context, task mail.Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "encode email task")
	}
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(task.Recipient()),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return errors.Wrapf(err, "publish %s", task.Name)
	}
	log.DebugContext(ctx, "Email task published", "task", task.Name, "id", task.ID, "partition", partition, "offset", offset)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
