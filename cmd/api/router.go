package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
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

	// Health check
	router.GET("/health", healthCheckHandler(c))

	// The gate: resolves the session cookie into an identity before any
	// protected handler runs.
	requireAuth := middleware.RequireAuth(c.UserService)

	setupUserRoutes(router, c, requireAuth)
	setupBlogRoutes(router, c, requireAuth)

	return router
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(router *gin.Engine, c *container.Container, requireAuth gin.HandlerFunc) {
	users := router.Group("/user")
	{
		users.POST("/register", c.UserHandler.Register)
		users.POST("/login", c.UserHandler.Login)
		users.POST("/logout", c.UserHandler.Logout)

		users.GET("/me", requireAuth, c.UserHandler.GetCurrent)
		users.PATCH("/update", requireAuth, c.UserHandler.Update)
		users.DELETE("/delete", requireAuth, c.UserHandler.Delete)
	}
}

// ========================================
// BLOG ROUTES
// ========================================
func setupBlogRoutes(router *gin.Engine, c *container.Container, requireAuth gin.HandlerFunc) {
	blogs := router.Group("/blog")
	blogs.Use(requireAuth)
	{
		blogs.POST("", c.BlogHandler.Create)
		blogs.GET("", c.BlogHandler.ListOwn)
		blogs.GET("/all", c.BlogHandler.ListPublic)
		blogs.GET("/:id", c.BlogHandler.GetDetail)
		blogs.PATCH("/:id", c.BlogHandler.Update)
		blogs.DELETE("/:id", c.BlogHandler.Delete)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   getEnv("APP_VERSION", "1.0.0"),
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
