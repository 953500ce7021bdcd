package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categorySvc service.CategoryService
}

func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// List every category, unpaginated.
func (s *CategoryHandler) List(c *gin.Context) {
	categories, err := s.categorySvc.ListCategories(c.Request.Context())
	if err != nil {
		response.DetailError(c, err)
		return
	}
	out := make([]*dto.CategoryDTO, 0, len(categories))
	for _, cat := range categories {
		out = append(out, dto.NewCategoryDTO(cat))
	}
	c.JSON(http.StatusOK, out)
}

func (s *CategoryHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Detail(c, http.StatusNotFound, "No PostCategory matches the given query.")
		return
	}
	category, err := s.categorySvc.GetCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.Detail(c, http.StatusNotFound, "No PostCategory matches the given query.")
			return
		}
		response.DetailError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryDTO(category))
}

// Health liveness probe.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
