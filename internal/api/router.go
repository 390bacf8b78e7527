package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/neuronav-backend-go/internal/config"
	"github.com/jengzang/neuronav-backend-go/internal/handler"
	"github.com/jengzang/neuronav-backend-go/internal/middleware"
	"go.uber.org/zap"
)

// SetupRouter 设置路由. limiter may be nil to disable rate limiting.
func SetupRouter(cfg *config.Config, nav *handler.NavigationHandler, limiter *middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "NeuroNav backend is running",
		})
	}
	r.GET("/health", health)
	r.GET("/ping", health)

	// API 路由组
	api := r.Group("/api/navigation")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}
	{
		api.POST("/routes", nav.PlanRoutes)
		api.POST("/score", nav.ScoreRoute)
		api.POST("/reroute", nav.Reroute)

		// 反馈接口
		fb := api.Group("/feedback")
		{
			fb.POST("", middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Required), nav.SubmitFeedback)
			fb.GET("", nav.ListFeedback)
			fb.GET("/summary", nav.FeedbackSummary)
		}
	}

	return r
}
