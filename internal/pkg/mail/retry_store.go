package mail

import (
	"context"
	log "log/slog"
	"time"

	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/redis"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// RedisRetryStore keeps pending retries in a sorted set scored by due time.
type RedisRetryStore struct {
	key string
}

func NewRedisRetryStore() *RedisRetryStore {
	return &RedisRetryStore{key: consts.EmailRetryKey}
}

func (s *RedisRetryStore) Schedule(ctx context.Context, task Task, at time.Time) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "encode email task")
	}
	return redis.ZAdd(ctx, s.key, float64(at.Unix()), string(payload))
}

func (s *RedisRetryStore) Due(ctx context.Context, now time.Time, limit int64) ([]Task, error) {
	members, err := redis.ZPopDue(ctx, s.key, float64(now.Unix()), limit)
	if err != nil {
		return nil, errors.Wrap(err, "pop due email retries")
	}
	tasks := make([]Task, 0, len(members))
	for _, m := range members {
		var task Task
		if err = json.Unmarshal([]byte(m), &task); err != nil {
			log.ErrorContext(ctx, "Dropping undecodable email retry", "payload", m, "err", err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
