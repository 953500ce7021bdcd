package dto

import "time"

type LogEntryFilter struct {
	Level  string `form:"level"`
	Logger string `form:"logger"`
	Query  string `form:"q"`
}

type LogEntryDTO struct {
	ID              uint64    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Level           string    `json:"level"`
	LoggerName      string    `json:"logger_name"`
	ShortLoggerName string    `json:"short_logger_name"`
	Message         string    `json:"message"`
	MessagePreview  string    `json:"message_preview"`
	Pathname        string    `json:"pathname"`
	LineNo          int       `json:"line_no"`
	Exception       string    `json:"exception"`
}
