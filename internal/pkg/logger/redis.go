package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const slowRedisThreshold = 100 * time.Millisecond

// RedisLoggerHook logs failed and slow redis commands.
type RedisLoggerHook struct{}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "redis dial failed",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		if err == nil && elapsed <= slowRedisThreshold {
			return nil
		}
		if errors.Is(err, redis.Nil) {
			return err
		}
		if err != nil && cmd.Name() == "client" && strings.Contains(err.Error(), "setinfo") {
			return err
		}

		fields := []any{
			log.String("command", cmd.Name()),
			log.String("args", redactArgs(cmd)),
			log.Duration("latency", elapsed),
		}
		if err != nil {
			log.ErrorContext(ctx, "redis command failed", append(fields, log.Any("err", err))...)
		} else {
			log.WarnContext(ctx, "redis command slow", fields...)
		}
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil {
			log.ErrorContext(ctx, "redis pipeline failed",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err))
		}
		return err
	}
}

// redactArgs hides credentials and stored values, keys stay visible.
func redactArgs(cmd redis.Cmder) string {
	switch cmd.Name() {
	case "auth", "hello":
		return "[PROTECTED]"
	case "set", "setex", "getdel", "get":
		args := cmd.Args()
		if len(args) > 1 {
			return fmt.Sprintf("[%s %v ...]", cmd.Name(), args[1])
		}
	}
	return fmt.Sprint(cmd.Args())
}
