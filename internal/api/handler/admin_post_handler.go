package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/pkg/storage"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminPostHandler struct {
	postAdminSvc service.PostAdminService
	store        storage.ObjectStorage
	paginator    Paginator
}

func NewAdminPostHandler(postAdminSvc service.PostAdminService, store storage.ObjectStorage, paginator Paginator) *AdminPostHandler {
	return &AdminPostHandler{postAdminSvc: postAdminSvc, store: store, paginator: paginator}
}

func (s *AdminPostHandler) List(c *gin.Context) {
	var filter dto.PostFilter
	if !bindQuery(c, &filter) {
		return
	}
	req, ok := s.paginator.adminPage(c)
	if !ok {
		return
	}

	posts, count, err := s.postAdminSvc.ListPosts(c.Request.Context(), &filter, req.window())
	if err != nil {
		response.Error(c, err)
		return
	}
	media := mediaResolver(c, s.store)
	out := make([]*dto.AdminPostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.NewAdminPostDTO(p, media))
	}
	adminList(c, req, count, out)
}

func (s *AdminPostHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postAdminSvc.GetPost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAdminPostDTO(post, mediaResolver(c, s.store)))
}

func (s *AdminPostHandler) Create(c *gin.Context) {
	var in dto.PostInput
	if !bindJSON(c, &in) {
		return
	}
	actor := service.ActorOf(middleware.CurrentUser(c))
	post, err := s.postAdminSvc.CreatePost(c.Request.Context(), actor, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAdminPostDTO(post, mediaResolver(c, s.store)))
}

func (s *AdminPostHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var in dto.PostInput
	if !bindJSON(c, &in) {
		return
	}
	actor := service.ActorOf(middleware.CurrentUser(c))
	post, err := s.postAdminSvc.UpdatePost(c.Request.Context(), actor, id, &in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAdminPostDTO(post, mediaResolver(c, s.store)))
}

func (s *AdminPostHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	actor := service.ActorOf(middleware.CurrentUser(c))
	if err = s.postAdminSvc.DeletePost(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminPostHandler) BulkDelete(c *gin.Context) {
	var in dto.BulkDeleteDTO
	if !bindJSON(c, &in) {
		return
	}
	actor := service.ActorOf(middleware.CurrentUser(c))
	deleted, err := s.postAdminSvc.BulkDeletePosts(c.Request.Context(), actor, in.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.BulkDeleteResult{Deleted: deleted})
}
