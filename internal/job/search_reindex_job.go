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

const reindexLockTTL = 30 * time.Minute

// SearchReindexJob rebuilds the post index; one instance at a time across replicas.
type SearchReindexJob struct {
	searchIndexSvc service.SearchIndexService
}

func NewSearchReindexJob(searchIndexSvc service.SearchIndexService) *SearchReindexJob {
	return &SearchReindexJob{searchIndexSvc: searchIndexSvc}
}

func (s *SearchReindexJob) Run() {
	runID := uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), "job-reindex-"+runID)

	locked, err := redis.TryLock(ctx, consts.SearchReindexLock, runID, reindexLockTTL, 0)
	if err != nil {
		log.ErrorContext(ctx, "Reindex lock failed", "err", err)
		return
	}
	if !locked {
		log.InfoContext(ctx, "Reindex already running elsewhere")
		return
	}
	defer redis.UnLock(ctx, consts.SearchReindexLock, runID)

	ctx, cancel := context.WithTimeout(ctx, reindexLockTTL)
	defer cancel()

	start := time.Now()
	n, err := s.searchIndexSvc.Reindex(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Search reindex failed", "indexed", n, "err", err)
		return
	}
	log.InfoContext(ctx, "SearchReindexJob finished", "indexed", n, "took", time.Since(start))
}
