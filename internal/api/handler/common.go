package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/pkg/i18n"
	"Newsroom/internal/pkg/storage"
	"Newsroom/internal/service"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// mediaResolver renders stored keys as absolute URLs of the current request.
func mediaResolver(c *gin.Context, store storage.ObjectStorage) dto.MediaURL {
	base := middleware.BaseURL(c)
	return func(key *string) *string {
		u := storage.PublicURL(store, key)
		if u == "" {
			return nil
		}
		if strings.HasPrefix(u, "/") {
			u = base + u
		}
		return &u
	}
}

func parseID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}

func requestLang(c *gin.Context) string {
	return i18n.NormalizeLang(c.Query("lang"))
}
