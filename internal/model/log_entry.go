package model

import (
	"strings"
	"time"
)

type LogEntry struct {
	ID         uint64    `gorm:"primaryKey" json:"id" bson:"_id"`
	Timestamp  time.Time `gorm:"not null;index" json:"timestamp" bson:"timestamp"`
	Level      string    `gorm:"type:varchar(20);not null;index" json:"level" bson:"level"`
	LoggerName string    `gorm:"type:varchar(100);index" json:"logger_name" bson:"logger_name"`
	Message    string    `gorm:"type:text" json:"message" bson:"message"`
	Pathname   string    `gorm:"type:varchar(500)" json:"pathname" bson:"pathname"`
	LineNo     int       `json:"line_no" bson:"line_no"`
	Exception  string    `gorm:"type:text" json:"exception" bson:"exception"`
}

func (LogEntry) TableName() string {
	return "log_entries"
}

// ShortLoggerName last two dotted segments of the logger name
func (e *LogEntry) ShortLoggerName() string {
	parts := strings.Split(e.LoggerName, ".")
	if len(parts) > 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}
	return e.LoggerName
}

// MessagePreview single-line message cut to 80 runes
func (e *LogEntry) MessagePreview() string {
	msg := []rune(strings.ReplaceAll(e.Message, "\n", " "))
	if len(msg) > 80 {
		return string(msg[:77]) + "..."
	}
	return string(msg)
}
