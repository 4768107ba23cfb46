package handler

import (
	"errors"
	"net/http"

	"notamadmin/internal/pkg/gredis"
	"notamadmin/internal/service"

	"github.com/gin-gonic/gin"
)

// StartScheduler starts scheduled NOTAM generation.
// @Summary Start the NOTAM scheduler
// @Description Generate NOTAMs for the configured airports now and on every interval
// @Tags scheduler
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/scheduler/start [post]
func (h *NotamHandler) StartScheduler(c *gin.Context) {
	if err := h.scheduler.Start(); err != nil {
		h.logger.Error(err)
		if errors.Is(err, service.ErrNoScheduledAirports) {
			c.JSON(http.StatusConflict, gin.H{"error": "No scheduled airports configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to start scheduler",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Scheduler started successfully",
		"status":  "running",
	})
}

// StopScheduler stops scheduled NOTAM generation.
// @Summary Stop the NOTAM scheduler
// @Tags scheduler
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/scheduler/stop [post]
func (h *NotamHandler) StopScheduler(c *gin.Context) {
	if err := h.scheduler.Stop(); err != nil {
		h.logger.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to stop scheduler",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Scheduler stopped successfully",
		"status":  "stopped",
	})
}

// SchedulerStatus reports whether scheduled generation is running.
// @Summary Scheduler status
// @Description Reads the state the scheduler mirrors to Redis, falling back to this process when no cache is reachable.
// @Tags scheduler
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/scheduler/status [get]
func (h *NotamHandler) SchedulerStatus(c *gin.Context) {
	status := "stopped"
	if h.schedulerRunning() {
		status = "running"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *NotamHandler) schedulerRunning() bool {
	if h.redisClient == nil {
		return h.scheduler.IsRunning()
	}
	state, err := h.redisClient.Get(gredis.SchedulerStateKey).Result()
	switch {
	case err == nil:
		return state == service.SchedulerStateRunning
	case gredis.IsNil(err):
		return false
	default:
		h.logger.Warnf("Redis error while reading scheduler state: %v", err)
		return h.scheduler.IsRunning()
	}
}
