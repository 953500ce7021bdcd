package repository

import (
	"Newsroom/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogEntryQuery struct {
	Level      string
	LoggerName string
	Query      string
	Page       Page
}

// LogEntryRepo is implemented by the relational store and the mongo store.
type LogEntryRepo interface {
	SaveLogEntry(ctx context.Context, entry *model.LogEntry) error
	ListLogEntries(ctx context.Context, q LogEntryQuery) ([]*model.LogEntry, int64, error)
	GetLogEntry(ctx context.Context, id uint64) (*model.LogEntry, error)
	DeleteLogEntry(ctx context.Context, id uint64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type LogEntryRepoImpl struct {
	db *gorm.DB
}

// NewLogEntryRepo writes through a silent session so persisting a record never logs SQL again.
func NewLogEntryRepo(db *gorm.DB) LogEntryRepo {
	return &LogEntryRepoImpl{db: db.Session(&gorm.Session{Logger: logger.Discard})}
}

func (s *LogEntryRepoImpl) SaveLogEntry(ctx context.Context, entry *model.LogEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *LogEntryRepoImpl) ListLogEntries(ctx context.Context, q LogEntryQuery) ([]*model.LogEntry, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.LogEntry{})
	if q.Level != "" {
		db = db.Where("level = ?", q.Level)
	}
	if q.LoggerName != "" {
		db = db.Where("logger_name = ?", q.LoggerName)
	}
	if q.Query != "" {
		db = containsAny(db, q.Query, "message", "logger_name", "pathname")
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	entries := make([]*model.LogEntry, 0)
	if err := q.Page.apply(db.Order("timestamp DESC, id DESC")).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *LogEntryRepoImpl) GetLogEntry(ctx context.Context, id uint64) (*model.LogEntry, error) {
	entry := &model.LogEntry{}
	if err := s.db.WithContext(ctx).First(entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (s *LogEntryRepoImpl) DeleteLogEntry(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.LogEntry{}, id).Error
}

func (s *LogEntryRepoImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&model.LogEntry{})
	return result.RowsAffected, result.Error
}
