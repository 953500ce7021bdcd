package api

import (
	"Newsroom/internal/api/config"
	"Newsroom/internal/api/handler"
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	_ = r.SetTrustedProxies(cfg.Server.TrustedProxy)
	r.RedirectTrailingSlash = true

	// TraceId & CORS & base URL & Logger
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.CommonMiddleware())
	logger.SetupGin(r)
	r.Use(middleware.AdminTrackingMiddleware(cfg.AdminTracking.PathPrefix))

	if !cfg.Storage.UseS3 && cfg.Storage.PublicBaseURL != "" && cfg.Storage.PublicBaseURL[0] == '/' {
		r.Static(cfg.Storage.PublicBaseURL, cfg.Storage.LocalDir)
	}

	limited := middleware.RateLimitMiddleware(group.RateLimiter)
	perm := func(action, modelName string) gin.HandlerFunc {
		return middleware.RequirePermission(group.PermissionService, model.Codename(action, modelName))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/check-health/", handler.Health)

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("/", group.PostHandler.List)
			postGroup.GET("/news/", group.PostHandler.News)
			postGroup.GET("/announcements/", group.PostHandler.Announcements)
			postGroup.GET("/media/", group.PostHandler.Media)
			postGroup.GET("/reports/", group.PostHandler.Reports)
			postGroup.GET("/latest-news/", group.PostHandler.LatestNews)
			postGroup.GET("/latest-announcements/", group.PostHandler.LatestAnnouncements)
			postGroup.GET("/latest-videos/", group.PostHandler.LatestVideos)
			postGroup.GET("/search/", group.PostHandler.Search)
			postGroup.GET("/:slug/", group.PostHandler.Detail)
		}

		categoryGroup := apiGroup.Group("/categories")
		{
			categoryGroup.GET("/", group.CategoryHandler.List)
			categoryGroup.GET("/:id/", group.CategoryHandler.Get)
		}

		authGroup := apiGroup.Group("/auth", limited)
		{
			authGroup.POST("/password/forgot", group.AccountHandler.ForgotPassword)
			authGroup.POST("/password/reset", group.AccountHandler.ResetPassword)
			authGroup.POST("/activate", group.AccountHandler.Activate)
		}

		adminGroup := apiGroup.Group("/admin")
		{
			// public
			adminGroup.POST("/login", limited, group.AuthHandler.Login)
			adminGroup.POST("/login/otp", limited, group.AuthHandler.LoginOTP)

			staffGroup := adminGroup.Group("")
			staffGroup.Use(middleware.AuthMiddleware(group.AuthService), middleware.StaffMiddleware())
			{
				staffGroup.POST("/logout", group.AuthHandler.Logout)
				staffGroup.GET("/me", group.AuthHandler.Me)
				staffGroup.POST("/me/email/verify", group.AccountHandler.SendEmailVerification)
				staffGroup.POST("/me/email/verify/confirm", group.AccountHandler.ConfirmEmail)
				staffGroup.POST("/me/email/change", group.AccountHandler.RequestEmailChange)
				staffGroup.POST("/me/email/change/confirm", group.AccountHandler.ConfirmEmailChange)

				staffGroup.GET("/meta", group.AdminMetaHandler.Models)
				staffGroup.GET("/meta/:model", group.AdminMetaHandler.Get)

				staffGroup.POST("/media", perm("add", "post"), group.MediaHandler.Upload)

				posts := staffGroup.Group("/posts")
				{
					posts.GET("", perm("view", "post"), group.AdminPostHandler.List)
					posts.POST("", perm("add", "post"), group.AdminPostHandler.Create)
					posts.POST("/bulk-delete", perm("delete", "post"), group.AdminPostHandler.BulkDelete)
					posts.GET("/:id", perm("view", "post"), group.AdminPostHandler.Get)
					posts.PUT("/:id", perm("change", "post"), group.AdminPostHandler.Update)
					posts.DELETE("/:id", perm("delete", "post"), group.AdminPostHandler.Delete)
				}

				categories := staffGroup.Group("/categories")
				{
					categories.GET("", perm("view", "postcategory"), group.AdminCategoryHandler.List)
					categories.POST("", perm("add", "postcategory"), group.AdminCategoryHandler.Create)
					categories.GET("/:id", perm("view", "postcategory"), group.AdminCategoryHandler.Get)
					categories.PUT("/:id", perm("change", "postcategory"), group.AdminCategoryHandler.Update)
					categories.DELETE("/:id", perm("delete", "postcategory"), group.AdminCategoryHandler.Delete)
				}

				users := staffGroup.Group("/users")
				{
					users.GET("", perm("view", "user"), group.AdminUserHandler.List)
					users.POST("", perm("add", "user"), group.AdminUserHandler.Create)
					users.GET("/:id", perm("view", "user"), group.AdminUserHandler.Get)
					users.PUT("/:id", perm("change", "user"), group.AdminUserHandler.Update)
					users.DELETE("/:id", perm("delete", "user"), group.AdminUserHandler.Delete)
					users.POST("/:id/invite", perm("change", "user"), group.AdminUserHandler.SendInvite)
				}

				logs := staffGroup.Group("/logs")
				{
					logs.GET("", perm("view", "logentry"), group.AdminLogHandler.List)
					logs.GET("/:id", perm("view", "logentry"), group.AdminLogHandler.Get)
					logs.DELETE("/:id", perm("delete", "logentry"), group.AdminLogHandler.Delete)
				}
			}
		}
	}

	return r
}
