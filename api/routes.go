package api

import (
	"net/http"

	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"github.com/SlpAus/netnuggets-backend/internal/rating"
	"github.com/SlpAus/netnuggets-backend/internal/submission"
	"github.com/SlpAus/netnuggets-backend/internal/user"
	"github.com/SlpAus/netnuggets-backend/internal/website"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", healthHandler)

		// 认证相关的路由组 /api/auth
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", user.RegisterHandler)
			authRoutes.POST("/login", user.LoginHandler)
		}

		// 网站目录相关的路由组 /api/websites
		websiteRoutes := api.Group("/websites")
		{
			// 列表接受可选的登录态，用于"我收藏的"排序
			websiteRoutes.GET("", user.OptionalAuth(), website.GetWebsites)
			websiteRoutes.GET("/:id", website.GetWebsiteByID)
			websiteRoutes.POST("/:id/rate", user.RequireAuth(), rating.RateWebsiteHandler)

			// 目录的直接增删改仅限管理员
			websiteRoutes.POST("", user.RequireAuth(), user.RequireAdmin(), website.CreateWebsiteHandler)
			websiteRoutes.PUT("/:id", user.RequireAuth(), user.RequireAdmin(), website.UpdateWebsiteHandler)
			websiteRoutes.DELETE("/:id", user.RequireAuth(), user.RequireAdmin(), website.DeleteWebsiteHandler)
		}

		// 登录用户的个人操作 /api/user
		userRoutes := api.Group("/user", user.RequireAuth())
		{
			userRoutes.POST("/bookmark", user.ToggleBookmarkHandler)
			userRoutes.GET("/bookmarks", user.GetBookmarksHandler)
			userRoutes.POST("/submit", submission.SubmitHandler)
		}

		// 管理面板 /api/admin
		adminRoutes := api.Group("/admin", user.RequireAuth(), user.RequireAdmin())
		{
			adminRoutes.GET("/submissions", submission.ListSubmissionsHandler)
			adminRoutes.POST("/submissions/:id/approve", submission.ApproveHandler)
			adminRoutes.POST("/submissions/:id/reject", submission.RejectHandler)
			adminRoutes.GET("/users", user.ListUsersHandler)
			adminRoutes.DELETE("/users/:id", user.DeleteUserHandler)
		}
	}
}

// healthHandler 报告服务与Redis缓存的当前状态
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"message":      "NetNuggets API is running",
		"cacheHealthy": database.IsRedisHealthy(),
	})
}
