package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ReadinessChecker reports whether the service can serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

func RegisterRoutes(router *gin.Engine, h *NotamHandler, ready ReadinessChecker) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/readyz", handleReady(ready))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	notams := router.Group("/notams")
	notams.GET("", h.ListNotams)
	notams.GET("/edit", h.EditNotam)
	notams.PUT("/:id", h.UpdateNotam)
	notams.PATCH("/:id", h.UpdateNotam)

	api := router.Group("/api")
	api.GET("/notams", h.ListNotams)
	api.POST("/notams/generate-batch", h.GenerateBatch)
	api.POST("/scheduler/start", h.StartScheduler)
	api.POST("/scheduler/stop", h.StopScheduler)
	api.GET("/scheduler/status", h.SchedulerStatus)
}

func handleReady(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
