package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/apperr"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/container"
)

var errRouteNotFound = apperr.NotFound("Route not found")

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.Fail(ctx, errRouteNotFound)
	})

	// Health check
	router.GET("/health", healthCheckHandler(c))

	authGuard := middleware.AuthMiddleware(c.JWTManager)

	setupBookRoutes(router, c, authGuard)
	setupUserRoutes(router, c, authGuard)
	setupCommentRoutes(router, c)

	return router
}

// ========================================
// BOOK ROUTES (tất cả cần token)
// ========================================
func setupBookRoutes(r *gin.Engine, c *container.Container, authGuard gin.HandlerFunc) {
	books := r.Group("/books", authGuard)
	{
		books.POST("", c.BookHandler.CreateBook)
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/pipe", c.BookHandler.Pipe)
		books.GET("/get/:id", c.BookHandler.GetBook)
		books.PATCH("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(r *gin.Engine, c *container.Container, authGuard gin.HandlerFunc) {
	users := r.Group("/users")
	{
		users.POST("/signup", c.UserHandler.Signup)
		users.POST("/signin", c.UserHandler.Signin)
		users.GET("/me", authGuard, c.UserHandler.GetProfile)
	}
}

// ========================================
// COMMENT CHANNEL (websocket namespace "comments")
// ========================================
func setupCommentRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/comments", c.CommentGateway.Handle)
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status, healthy := c.Health(ctx.Request.Context())

		code := http.StatusOK
		state := "ok"
		if !healthy {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}

		response.JSON(ctx, code, gin.H{
			"status":      state,
			"version":     c.Config.App.Version,
			"store":       status.Store,
			"cache":       status.Cache,
			"connections": c.CommentGateway.Connections(),
		})
	}
}
