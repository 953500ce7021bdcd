package kafka

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize        = 32
	batchTimeout     = 1 * time.Second
	maxRetryInterval = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch buffers up to batchSize messages or batchTimeout, whichever comes first.
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch runs logic concurrently, retrying each message with capped
// exponential backoff, then commits the batch by marking its last message.
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup
	ctx := session.Context()

	for _, msg := range messages {
		wg.Add(1)
		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			retryInterval := 100 * time.Millisecond
			for {
				err := logic(ctx, m)
				if err == nil {
					return
				}
				log.ErrorContext(ctx, "process message error", "topic", m.Topic, "offset", m.Offset, "err", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(retryInterval):
				}
				retryInterval = min(retryInterval*2, maxRetryInterval)
			}
		}(msg)
	}
	wg.Wait()

	if ctx.Err() == nil && len(messages) > 0 {
		session.MarkMessage(messages[len(messages)-1], "")
		session.Commit()
	}
}
