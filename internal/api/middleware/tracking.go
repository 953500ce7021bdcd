package middleware

import (
	"fmt"
	log "log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const trackingLogger = "http.admin"

// AdminTrackingMiddleware logs every admin write after the handler ran.
// A broken tracking line never affects the response.
func AdminTrackingMiddleware(pathPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodDelete {
			return
		}
		if !strings.HasPrefix(c.Request.URL.Path, pathPrefix) {
			return
		}
		trackAdminRequest(c)
	}
}

func trackAdminRequest(c *gin.Context) {
	ctx := c.Request.Context()
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, fmt.Sprintf("Error tracking admin request: %v", r), "logger", trackingLogger)
		}
	}()

	var username string
	if u := CurrentUser(c); u != nil {
		username = u.Username
	}
	log.InfoContext(ctx, fmt.Sprintf("Admin Request: %s %s by %s - Status: %d",
		c.Request.Method, c.Request.URL.Path, username, c.Writer.Status()), "logger", trackingLogger)
}
