package handler

import (
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON decodes and validates the body, replying on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			response.Error(c, err)
		} else {
			response.Error(c, service.ErrParamInvalid)
		}
		return false
	}
	if err := util.ValidateDTO(obj); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return false
	}
	if err := util.ValidateDTO(obj); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

// adminPage parses pagination for the enveloped admin lists.
func (p Paginator) adminPage(c *gin.Context) (pageRequest, bool) {
	req, err := p.parse(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return req, false
	}
	return req, true
}

func adminList[T any](c *gin.Context, req pageRequest, count int64, results []T) {
	page, err := newPage(c, req, count, results)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	response.Success(c, page)
}
