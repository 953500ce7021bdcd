package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminLogHandler log entries are read-only apart from deletion.
type AdminLogHandler struct {
	logEntrySvc service.LogEntryService
	paginator   Paginator
}

func NewAdminLogHandler(logEntrySvc service.LogEntryService, paginator Paginator) *AdminLogHandler {
	return &AdminLogHandler{logEntrySvc: logEntrySvc, paginator: paginator}
}

func (s *AdminLogHandler) List(c *gin.Context) {
	var filter dto.LogEntryFilter
	if !bindQuery(c, &filter) {
		return
	}
	req, ok := s.paginator.adminPage(c)
	if !ok {
		return
	}
	entries, count, err := s.logEntrySvc.ListLogEntries(c.Request.Context(), &filter, req.window())
	if err != nil {
		response.Error(c, err)
		return
	}
	adminList(c, req, count, entries)
}

func (s *AdminLogHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	entry, err := s.logEntrySvc.GetLogEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry)
}

func (s *AdminLogHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.logEntrySvc.DeleteLogEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
