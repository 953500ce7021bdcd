package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/pkg/storage"
	"Newsroom/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PostHandler public, read-only post endpoints.
type PostHandler struct {
	postSvc   service.PostService
	store     storage.ObjectStorage
	paginator Paginator
}

func NewPostHandler(postSvc service.PostService, store storage.ObjectStorage, paginator Paginator) *PostHandler {
	return &PostHandler{
		postSvc:   postSvc,
		store:     store,
		paginator: paginator,
	}
}

func (s *PostHandler) List(c *gin.Context)          { s.list(c, "") }
func (s *PostHandler) News(c *gin.Context)          { s.list(c, model.CategoryTypeNews) }
func (s *PostHandler) Announcements(c *gin.Context) { s.list(c, model.CategoryTypeAnnouncement) }
func (s *PostHandler) Media(c *gin.Context)         { s.list(c, model.CategoryTypeMedia) }
func (s *PostHandler) Reports(c *gin.Context)       { s.list(c, model.CategoryTypeReport) }

func (s *PostHandler) LatestNews(c *gin.Context) {
	s.latest(c, model.CategoryTypeNews, consts.LatestNewsLimit)
}

func (s *PostHandler) LatestAnnouncements(c *gin.Context) {
	s.latest(c, model.CategoryTypeAnnouncement, consts.LatestAnnouncementsLimit)
}

func (s *PostHandler) LatestVideos(c *gin.Context) {
	s.latest(c, model.CategoryTypeMedia, consts.LatestVideosLimit)
}

func (s *PostHandler) Search(c *gin.Context) {
	req, err := s.paginator.parse(c)
	if err != nil {
		response.Detail(c, http.StatusNotFound, err.Error())
		return
	}

	posts, count, err := s.postSvc.Search(c.Request.Context(), c.Query("q"), req.window())
	if err != nil {
		response.DetailError(c, err)
		return
	}
	s.page(c, req, posts, count)
}

func (s *PostHandler) Detail(c *gin.Context) {
	post, err := s.postSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.Detail(c, http.StatusNotFound, "No Post matches the given query.")
			return
		}
		response.DetailError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostDetailDTO(post, requestLang(c), mediaResolver(c, s.store)))
}

func (s *PostHandler) list(c *gin.Context, categoryType string) {
	req, err := s.paginator.parse(c)
	if err != nil {
		response.Detail(c, http.StatusNotFound, err.Error())
		return
	}

	posts, count, err := s.postSvc.ListPublished(c.Request.Context(), categoryType, req.window())
	if err != nil {
		response.DetailError(c, err)
		return
	}
	s.page(c, req, posts, count)
}

func (s *PostHandler) latest(c *gin.Context, categoryType string, limit int) {
	posts, err := s.postSvc.Latest(c.Request.Context(), categoryType, limit)
	if err != nil {
		response.DetailError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostListDTOs(posts, requestLang(c), mediaResolver(c, s.store)))
}

func (s *PostHandler) page(c *gin.Context, req pageRequest, posts []*model.Post, count int64) {
	page, err := newPage(c, req, count, dto.NewPostListDTOs(posts, requestLang(c), mediaResolver(c, s.store)))
	if err != nil {
		response.Detail(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, page)
}
