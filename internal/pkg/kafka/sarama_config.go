package kafka

import (
	"Newsroom/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

// newSaramaConfig shared by the producer and the consumer groups.
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Retry.Max = 5
	c.Producer.Return.Successes = true
	c.Producer.Idempotent = false

	c.Consumer.Return.Errors = true
	c.Consumer.Offsets.Initial = sarama.OffsetOldest
	c.Consumer.Offsets.AutoCommit.Enable = false

	setSeconds(&c.Consumer.Group.Session.Timeout, kafkaCfg.Consumer.SessionTimeout)
	setSeconds(&c.Consumer.Group.Heartbeat.Interval, kafkaCfg.Consumer.HeartbeatInterval)
	setSeconds(&c.Consumer.Group.Rebalance.Timeout, kafkaCfg.Consumer.RebalanceTimeout)
	setSeconds(&c.Consumer.MaxProcessingTime, kafkaCfg.Consumer.MaxProcessingTime)

	return c
}

// setSeconds overrides a sarama default only when configured.
func setSeconds(dst *time.Duration, seconds int) {
	if seconds > 0 {
		*dst = time.Duration(seconds) * time.Second
	}
}
