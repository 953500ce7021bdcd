package handler

import (
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminMetaHandler struct {
	metaSvc service.MetaService
}

func NewAdminMetaHandler(metaSvc service.MetaService) *AdminMetaHandler {
	return &AdminMetaHandler{metaSvc: metaSvc}
}

func (s *AdminMetaHandler) Models(c *gin.Context) {
	response.Success(c, s.metaSvc.Models())
}

// Get form configuration; ?object_id marks an edit form.
func (s *AdminMetaHandler) Get(c *gin.Context) {
	meta, err := s.metaSvc.Meta(c.Param("model"), c.Query("object_id") != "")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, meta)
}
