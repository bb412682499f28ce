package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.ClientIPMiddleware())

	router.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "version": c.Config.App.Version})
	})

	auth := middleware.AuthMiddleware(c.JWTManager)
	admin := middleware.AdminMiddleware()

	v1 := router.Group("/v1")
	{
		// Identity
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", c.UserHandler.Register)
			authGroup.POST("/login", c.UserHandler.Login)
			authGroup.POST("/refresh", c.UserHandler.Refresh)
			authGroup.GET("/me", auth, c.UserHandler.Me)
		}

		// Posts
		posts := v1.Group("/posts")
		{
			posts.GET("", c.PostHandler.List)
			posts.POST("", auth, c.PostHandler.Create)
			posts.POST("/refetch", c.PostHandler.Refetch)
			posts.GET("/mine", auth, c.PostHandler.Mine)
			posts.GET("/slug/:slug", c.PostHandler.GetBySlug)
			posts.PUT("/:id", auth, c.PostHandler.Update)
			posts.DELETE("/:id", auth, c.PostHandler.Delete)
			posts.POST("/:id/views", c.PostHandler.RecordView)
			posts.PUT("/:id/progress", auth, c.PostHandler.UpdateReadingProgress)
		}

		// Full-text search
		v1.GET("/search", c.PostHandler.Search)

		// Authors
		authors := v1.Group("/authors")
		{
			authors.GET("", c.AuthorHandler.List)
			authors.GET("/:id", c.AuthorHandler.Get)
			authors.GET("/:id/posts", c.AuthorHandler.Posts)
			authors.PUT("/:id", auth, c.AuthorHandler.Update)
		}

		// Categories
		categories := v1.Group("/categories")
		{
			categories.GET("", c.CategoryHandler.List)
			categories.POST("", auth, admin, c.CategoryHandler.Create)
			categories.GET("/:slug", c.CategoryHandler.Get)
			categories.GET("/:slug/posts", c.CategoryHandler.Posts)
		}

		// Uploads
		v1.POST("/uploads/images", auth, c.MediaHandler.Upload)

		// Admin panel. Content deletion here ignores ownership.
		adminGroup := v1.Group("/admin", auth, admin)
		{
			adminGroup.DELETE("/posts/:id", c.PostHandler.Delete)
			adminGroup.DELETE("/authors/:id", c.AuthorHandler.Delete)
			adminGroup.GET("/stats/posts", c.PostHandler.Statistics)
			adminGroup.GET("/stats/authors", c.AuthorHandler.Statistics)
			adminGroup.GET("/posts/export", c.PostHandler.Export)
		}
	}

	return router
}
