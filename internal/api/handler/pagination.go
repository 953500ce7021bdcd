package handler

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/repository"
	"errors"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidPage = errors.New("Invalid page.")

// Paginator page-number pagination with a client-selectable page size.
type Paginator struct {
	PageSize    int
	MaxPageSize int
}

// pageRequest a parsed page/page_size pair.
type pageRequest struct {
	number int
	size   int
}

func (r pageRequest) window() repository.Page {
	return repository.Page{Offset: (r.number - 1) * r.size, Limit: r.size}
}

// parse reads page and page_size. A malformed page is an error, a malformed
// page_size falls back to the default.
func (p Paginator) parse(c *gin.Context) (pageRequest, error) {
	req := pageRequest{number: 1, size: p.PageSize}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return req, errInvalidPage
		}
		req.number = n
	}
	if raw := c.Query("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			req.size = min(n, p.MaxPageSize)
		}
	}
	return req, nil
}

// newPage builds the envelope; a page past the end is an error unless it is page 1.
func newPage[T any](c *gin.Context, req pageRequest, count int64, results []T) (*dto.Page[T], error) {
	if req.number > 1 && int64(req.window().Offset) >= count {
		return nil, errInvalidPage
	}
	if results == nil {
		results = []T{}
	}
	page := &dto.Page[T]{Count: count, Results: results}
	if int64(req.number*req.size) < count {
		page.Next = pageLink(c, req.number+1)
	}
	if req.number > 1 {
		page.Previous = pageLink(c, req.number-1)
	}
	return page, nil
}

// pageLink absolute URL of the current request pointing at another page.
// Page 1 drops the parameter altogether.
func pageLink(c *gin.Context, number int) *string {
	u := url.URL{Path: c.Request.URL.Path}
	q := c.Request.URL.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	link := middleware.BaseURL(c) + u.String()
	return &link
}
