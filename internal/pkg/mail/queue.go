package mail

import (
	"context"
	log "log/slog"
	"sync"
)

// Queue accepts tasks for asynchronous delivery.
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
}

// LocalQueue delivers in background goroutines of this process, used when
// no broker is configured.
type LocalQueue struct {
	worker *Worker
	wg     sync.WaitGroup
}

func NewLocalQueue(worker *Worker) *LocalQueue {
	return &LocalQueue{worker: worker}
}

func (q *LocalQueue) Enqueue(ctx context.Context, task Task) error {
	ctx = context.WithoutCancel(ctx)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := q.worker.Process(ctx, task); err != nil {
			log.ErrorContext(ctx, "Local email delivery failed", "task", task.Name, "id", task.ID, "err", err)
		}
	}()
	return nil
}

// Wait blocks until in-flight deliveries finish.
func (q *LocalQueue) Wait() {
	q.wg.Wait()
}
