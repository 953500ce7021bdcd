package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"
)

// LogEntryService read and delete access to persisted log records.
type LogEntryService interface {
	ListLogEntries(ctx context.Context, filter *dto.LogEntryFilter, page repository.Page) ([]*dto.LogEntryDTO, int64, error)
	GetLogEntry(ctx context.Context, id uint64) (*dto.LogEntryDTO, error)
	DeleteLogEntry(ctx context.Context, id uint64) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}

type LogEntryServiceImpl struct {
	logEntryRepo repository.LogEntryRepo
	now          func() time.Time
}

func NewLogEntryService(logEntryRepo repository.LogEntryRepo) LogEntryService {
	return &LogEntryServiceImpl{logEntryRepo: logEntryRepo, now: time.Now}
}

func (s *LogEntryServiceImpl) ListLogEntries(ctx context.Context, filter *dto.LogEntryFilter, page repository.Page) ([]*dto.LogEntryDTO, int64, error) {
	q := repository.LogEntryQuery{Page: page}
	if filter != nil {
		q.Level = strings.ToUpper(strings.TrimSpace(filter.Level))
		q.LoggerName = strings.TrimSpace(filter.Logger)
		q.Query = strings.TrimSpace(filter.Query)
	}
	entries, total, err := s.logEntryRepo.ListLogEntries(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	res := make([]*dto.LogEntryDTO, len(entries))
	for i, e := range entries {
		res[i] = newLogEntryDTO(e)
	}
	return res, total, nil
}

func (s *LogEntryServiceImpl) GetLogEntry(ctx context.Context, id uint64) (*dto.LogEntryDTO, error) {
	entry, err := s.logEntryRepo.GetLogEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrLogEntryNotFound
	}
	return newLogEntryDTO(entry), nil
}

func (s *LogEntryServiceImpl) DeleteLogEntry(ctx context.Context, id uint64) error {
	if _, err := s.GetLogEntry(ctx, id); err != nil {
		return err
	}
	return s.logEntryRepo.DeleteLogEntry(ctx, id)
}

// PurgeOlderThan drops entries older than days, days <= 0 keeps everything.
func (s *LogEntryServiceImpl) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -days)
	n, err := s.logEntryRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.InfoContext(ctx, "Old log entries purged", "count", n, "cutoff", cutoff)
	}
	return n, nil
}

func newLogEntryDTO(e *model.LogEntry) *dto.LogEntryDTO {
	return &dto.LogEntryDTO{
		ID:              e.ID,
		Timestamp:       e.Timestamp,
		Level:           e.Level,
		LoggerName:      e.LoggerName,
		ShortLoggerName: e.ShortLoggerName(),
		Message:         e.Message,
		MessagePreview:  e.MessagePreview(),
		Pathname:        e.Pathname,
		LineNo:          e.LineNo,
		Exception:       e.Exception,
	}
}
