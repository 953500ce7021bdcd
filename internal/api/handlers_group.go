package api

import (
	"Newsroom/internal/api/handler"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/service"
)

// HandlersGroup every initialised handler plus what the route guards need
type HandlersGroup struct {
	PostHandler          *handler.PostHandler
	CategoryHandler      *handler.CategoryHandler
	AdminPostHandler     *handler.AdminPostHandler
	AdminCategoryHandler *handler.AdminCategoryHandler
	AdminUserHandler     *handler.AdminUserHandler
	AdminLogHandler      *handler.AdminLogHandler
	AdminMetaHandler     *handler.AdminMetaHandler
	MediaHandler         *handler.MediaHandler
	AuthHandler          *handler.AuthHandler
	AccountHandler       *handler.AccountHandler

	AuthService       service.AuthService
	PermissionService service.PermissionService
	RateLimiter       *middleware.IPRateLimiter
}
