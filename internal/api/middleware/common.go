package middleware

import (
	"github.com/gin-gonic/gin"
)

// BaseURLKey gin key holding scheme://host of the current request.
const BaseURLKey = "base_url"

// CommonMiddleware records the public base URL used for absolute links.
func CommonMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		host := c.GetHeader("X-Forwarded-Host")
		if host == "" {
			host = c.Request.Host
		}
		c.Set(BaseURLKey, scheme+"://"+host)
		c.Next()
	}
}

// BaseURL of the current request, "" outside CommonMiddleware.
func BaseURL(c *gin.Context) string {
	return c.GetString(BaseURLKey)
}
