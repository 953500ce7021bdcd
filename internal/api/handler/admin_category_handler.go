package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type AdminCategoryHandler struct {
	categoryAdminSvc service.CategoryAdminService
	paginator        Paginator
}

func NewAdminCategoryHandler(categoryAdminSvc service.CategoryAdminService, paginator Paginator) *AdminCategoryHandler {
	return &AdminCategoryHandler{categoryAdminSvc: categoryAdminSvc, paginator: paginator}
}

func (s *AdminCategoryHandler) List(c *gin.Context) {
	var filter dto.CategoryFilter
	if !bindQuery(c, &filter) {
		return
	}
	req, ok := s.paginator.adminPage(c)
	if !ok {
		return
	}
	categories, count, err := s.categoryAdminSvc.ListCategories(c.Request.Context(), &filter, req.window())
	if err != nil {
		response.Error(c, err)
		return
	}
	adminList(c, req, count, categories)
}

func (s *AdminCategoryHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	category, err := s.categoryAdminSvc.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toAdminCategory(category))
}

func (s *AdminCategoryHandler) Create(c *gin.Context) {
	var in dto.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	actor := service.ActorOf(middleware.CurrentUser(c))
	category, err := s.categoryAdminSvc.CreateCategory(c.Request.Context(), actor, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toAdminCategory(category))
}

func (s *AdminCategoryHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var in dto.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	actor := service.ActorOf(middleware.CurrentUser(c))
	category, err := s.categoryAdminSvc.UpdateCategory(c.Request.Context(), actor, id, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toAdminCategory(category))
}

func (s *AdminCategoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	actor := service.ActorOf(middleware.CurrentUser(c))
	if err = s.categoryAdminSvc.DeleteCategory(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func toAdminCategory(category *model.PostCategory) *dto.AdminCategoryDTO {
	out := &dto.AdminCategoryDTO{}
	_ = copier.Copy(out, category)
	out.TypeLabel = model.CategoryTypeLabels[category.Type]
	return out
}
