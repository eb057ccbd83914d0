package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshare-backend/internal/domains/user"
	"bookshare-backend/internal/shared/middleware"
	"bookshare-backend/internal/shared/response"
	"bookshare-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupRequestRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authenticated := middleware.AuthMiddleware(c.JWTManager, c.UserService)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/oauth/:provider", c.UserHandler.OAuthSignIn)
		auth.POST("/logout", authenticated, c.UserHandler.Logout)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager, c.UserService))
	{
		users.GET("/me", c.UserHandler.Me)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authenticated := middleware.AuthMiddleware(c.JWTManager, c.UserService)

	books := v1.Group("/books")
	{
		// Browsing is public
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/search", c.BookHandler.SearchBooks)
		books.GET("/:id", c.BookHandler.GetBookDetail)

		// Listing a book requires a donor account
		books.POST("",
			authenticated,
			middleware.RequireRole(string(user.RoleDonor)),
			c.BookHandler.CreateBook,
		)
	}
}

// ========================================
// REQUEST ROUTES
// ========================================
func setupRequestRoutes(v1 *gin.RouterGroup, c *container.Container) {
	requests := v1.Group("/requests")
	requests.Use(middleware.AuthMiddleware(c.JWTManager, c.UserService))
	{
		requests.POST("",
			middleware.RequireRole(string(user.RoleCollector)),
			c.RequestHandler.CreateRequest,
		)
		requests.GET("", c.RequestHandler.ListRequests)
		requests.GET("/:id", c.RequestHandler.GetRequestDetail)
		requests.PATCH("/:id/status",
			middleware.RequireRole(string(user.RoleDonor)),
			c.RequestHandler.UpdateRequestStatus,
		)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.Store.Ping(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "storage is unreachable")
			return
		}

		response.Success(ctx, http.StatusOK, "", gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
			"storage": "ok",
			"driver":  c.Config.Storage.Driver,
		})
	}
}
