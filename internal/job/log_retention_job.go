package job

import (
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/logger"
	"Newsroom/internal/pkg/redis"
	"Newsroom/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

type LogRetentionJob struct {
	logEntrySvc   service.LogEntryService
	retentionDays int
}

func NewLogRetentionJob(logEntrySvc service.LogEntryService, retentionDays int) *LogRetentionJob {
	return &LogRetentionJob{logEntrySvc: logEntrySvc, retentionDays: retentionDays}
}

func (s *LogRetentionJob) Run() {
	if s.retentionDays <= 0 {
		return
	}
	runID := uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), "job-log-retention-"+runID)

	locked, err := redis.TryLock(ctx, consts.LogRetentionLock, runID, 10*time.Minute, 0)
	if err != nil || !locked {
		return
	}
	defer redis.UnLock(ctx, consts.LogRetentionLock, runID)

	if _, err = s.logEntrySvc.PurgeOlderThan(ctx, s.retentionDays); err != nil {
		log.ErrorContext(ctx, "Log retention failed", "err", err)
	}
}
