package kafka

import (
	"Newsroom/internal/pkg/mail"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducerEnqueue(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	task := mail.NewPasswordResetTask("reader@example.com", "Ann", "1234")
	task.ID = "task-1"

	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got mail.Task
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		assert.Equal(t, task, got)
		return nil
	})

	p := NewProducerWith(sp, "newsroom.email")
	require.NoError(t, p.Enqueue(context.Background(), task))
	require.NoError(t, p.Close())
}

func TestProducerEnqueueFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerWith(sp, "newsroom.email")
	err := p.Enqueue(context.Background(), mail.NewOTPVerificationTask("a@b.c", "A", "123456"))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

type fakeSession struct {
	ctx    context.Context
	mu     sync.Mutex
	marked []int64
	commit int
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }
func (s *fakeSession) MemberID() string           { return "member" }
func (s *fakeSession) GenerationID() int32        { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string) {
}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}
func (s *fakeSession) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit++
}
func (s *fakeSession) Context() context.Context { return s.ctx }

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return "newsroom.email" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return int64(len(c.messages)) }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestPullMessageBatchMarksLastMessage(t *testing.T) {
	session := &fakeSession{ctx: context.Background()}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 3)}
	for i := int64(0); i < 3; i++ {
		claim.messages <- &sarama.ConsumerMessage{Offset: i}
	}
	close(claim.messages)

	var mu sync.Mutex
	seen := map[int64]int{}
	attempts := 0
	logic := func(_ context.Context, msg *sarama.ConsumerMessage) error {
		mu.Lock()
		defer mu.Unlock()
		seen[msg.Offset]++
		if msg.Offset == 1 && attempts == 0 {
			attempts++
			return assert.AnError
		}
		return nil
	}

	require.NoError(t, pullMessageBatch(session, claim, logic))
	assert.Equal(t, map[int64]int{0: 1, 1: 2, 2: 1}, seen)
	assert.Equal(t, []int64{2}, session.marked)
	assert.Equal(t, 1, session.commit)
}

func TestPullMessageBatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session := &fakeSession{ctx: ctx}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage)}

	done := make(chan error, 1)
	go func() {
		done <- pullMessageBatch(session, claim, func(context.Context, *sarama.ConsumerMessage) error { return nil })
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.Empty(t, session.marked)
}

func TestEmailHandlerDropsUndecodable(t *testing.T) {
	h := NewEmailHandler(nil)
	err := h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte("{not json")})
	assert.NoError(t, err)
}
