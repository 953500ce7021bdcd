package middleware

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/service"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

type ctxUserKey struct{}

// AuthMiddleware resolves the Bearer token to a user and stores it on the request.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, service.Unauthorized, "authentication credentials were not provided")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Set(tokenKey, token)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ctxUserKey{}, user))
		c.Next()
	}
}

// StaffMiddleware admits staff accounts only.
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsStaff {
			response.Error(c, service.ErrNotStaff)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission checks a codename such as "change_post"; superusers pass.
func RequirePermission(permissionService service.PermissionService, codename string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := permissionService.HasPermission(c.Request.Context(), CurrentUser(c), codename)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, service.ErrPermissionDenied)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser authenticated user of the request, nil when anonymous.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// UserFromContext the same user for code that only sees a context.Context.
func UserFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(ctxUserKey{}).(*model.User)
	return u
}

// CurrentToken raw bearer token accepted by AuthMiddleware.
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
