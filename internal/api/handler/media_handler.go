package handler

import (
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Upload multipart "file" plus the target "entity" folder.
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	res, err := s.mediaSvc.Upload(c.Request.Context(), c.PostForm("entity"), file.Filename, reader, file.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	log.InfoContext(c.Request.Context(), "media upload success", "key", res.Key, "original", file.Filename)
	response.Success(c, res)
}
