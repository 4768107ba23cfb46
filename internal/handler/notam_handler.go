package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"notamadmin/internal/model"
	"notamadmin/internal/mpostgres"
	"notamadmin/internal/observability"
	"notamadmin/internal/pkg/gredis"
	"notamadmin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/useinsider/go-pkg/inslogger"
	"github.com/useinsider/go-pkg/insredis"
)

const (
	notamListCacheTTL = 10 * time.Minute
	notamsIndexPath   = "/notams"
)

type NotamHandler struct {
	notamService   mpostgres.NotamService
	batchGenerator service.BatchGenerator
	notifier       service.NotamNotifier
	scheduler      service.SchedulerService
	logger         inslogger.Interface
	redisClient    insredis.RedisInterface
	metrics        *observability.Metrics
}

func NewNotamHandler(
	notamService mpostgres.NotamService,
	batchGenerator service.BatchGenerator,
	notifier service.NotamNotifier,
	scheduler service.SchedulerService,
	logger inslogger.Interface,
	redisClient insredis.RedisInterface,
	metrics *observability.Metrics,
) *NotamHandler {

	return &NotamHandler{
		notamService:   notamService,
		batchGenerator: batchGenerator,
		notifier:       notifier,
		scheduler:      scheduler,
		logger:         logger,
		redisClient:    redisClient,
		metrics:        metrics,
	}
}

// ListNotams returns all NOTAMs, newest first.
// @Summary List NOTAMs
// @Description List NOTAMs with their airport, newest first. Optional airport-name filter and pagination.
// @Tags notams
// @Produce json
// @Param airport query string false "Case-insensitive airport name filter"
// @Param page query int false "Page number, enables pagination"
// @Param per_page query int false "Page size: 5, 10, 20, 50 or 100"
// @Success 200 {object} map[string]interface{}
// @Router /notams [get]
func (h *NotamHandler) ListNotams(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warnf("Invalid list query: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	notams, err := h.loadNotams(c)
	if err != nil {
		h.logger.Errorf("Error retrieving NOTAMs from database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve NOTAMs",
			"details": err.Error(),
		})
		return
	}

	notams = FilterByAirport(notams, query.Airport)
	response := gin.H{"flash": popFlash(c)}
	if query.Paginated() {
		var page Pagination
		notams, page = Paginate(notams, query.Page, query.PerPage)
		response["pagination"] = page
	}
	response["notams"] = notams

	c.JSON(http.StatusOK, response)
}

// loadNotams reads the full list through the Redis cache when one is configured.
func (h *NotamHandler) loadNotams(c *gin.Context) ([]model.Notam, error) {
	if h.redisClient != nil {
		cached, err := h.redisClient.Get(gredis.NotamListKey).Result()
		switch {
		case err == nil && cached != "":
			var notams []model.Notam
			if err := json.Unmarshal([]byte(cached), &notams); err == nil {
				h.observeCache("hit")
				return notams, nil
			}
			h.logger.Warnf("Discarding unreadable NOTAM list cache entry: %v", err)
		case err != nil && !gredis.IsNil(err):
			h.logger.Warnf("Redis error while reading NOTAM list cache: %v", err)
			h.observeCache("error")
		default:
			h.observeCache("miss")
		}
	}

	notams, err := h.notamService.ListNotams(c.Request.Context())
	if err != nil {
		return nil, err
	}

	if h.redisClient != nil {
		payload, err := json.Marshal(notams)
		if err != nil {
			h.logger.Warnf("Failed to marshal NOTAMs for cache: %v", err)
		} else if err := h.redisClient.Set(gredis.NotamListKey, payload, notamListCacheTTL).Err(); err != nil {
			h.logger.Warnf("Failed to cache NOTAM list: %v", err)
		}
	}

	h.logger.Logf("Retrieved %d NOTAMs from database", len(notams))
	return notams, nil
}

func (h *NotamHandler) invalidateListCache() {
	if h.redisClient == nil {
		return
	}
	if err := h.redisClient.Del(gredis.NotamListKey).Err(); err != nil {
		h.logger.Warnf("Failed to clear NOTAM list cache: %v", err)
	}
}

func (h *NotamHandler) observeCache(result string) {
	if h.metrics != nil {
		h.metrics.ListCache.WithLabelValues(result).Inc()
	}
}

// EditNotam looks up a NOTAM for editing.
// @Summary Get a NOTAM for editing
// @Description Missing id redirects to the list with an error flash.
// @Tags notams
// @Produce json
// @Param id query int true "NOTAM ID"
// @Success 200 {object} map[string]interface{}
// @Failure 302
// @Failure 404 {object} map[string]interface{}
// @Router /notams/edit [get]
func (h *NotamHandler) EditNotam(c *gin.Context) {
	idParam := c.Query("id")
	if idParam == "" {
		setFlash(c, flashError, "NOTAM ID is required for editing.")
		c.Redirect(http.StatusFound, notamsIndexPath)
		return
	}

	id, ok := parseNotamID(idParam)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "NOTAM not found"})
		return
	}

	notam, err := h.notamService.GetNotam(c.Request.Context(), id)
	if err != nil {
		h.respondLookupError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notam": notam})
}

// UpdateNotam replaces the message of a NOTAM.
// @Summary Update a NOTAM message
// @Description Persists the message and notifies the update webhook on a best-effort basis. The message is trimmed before it is validated.
// @Tags notams
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "NOTAM ID"
// @Param notam body model.UpdateNotamRequest true "New message"
// @Success 303
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /notams/{id} [put]
func (h *NotamHandler) UpdateNotam(c *gin.Context) {
	id, ok := parseNotamID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "NOTAM not found"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.notamService.GetNotam(ctx, id); err != nil {
		h.respondLookupError(c, id, err)
		return
	}

	var req model.UpdateNotamRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnf("Unreadable update payload for NOTAM %d: %v", id, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Invalid request payload",
			"errors": validationErrors(err),
		})
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := requestValidator.Struct(req); err != nil {
		h.logger.Warnf("Invalid update payload for NOTAM %d: %v", id, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Invalid request payload",
			"errors": validationErrors(err),
		})
		return
	}

	notam, err := h.notamService.UpdateNotamMessage(ctx, id, req.Message)
	if err != nil {
		h.respondLookupError(c, id, err)
		return
	}
	h.logger.Logf("Updated NOTAM %d", id)
	h.invalidateListCache()

	if err := h.notifier.NotifyUpdated(ctx, notam); err != nil {
		h.logger.Errorf("Failed to trigger n8n webhook for NOTAM update: %v", err)
	}

	setFlash(c, flashSuccess, "NOTAM updated successfully.")
	c.Redirect(http.StatusSeeOther, notamsIndexPath)
}

// GenerateBatch creates weather NOTAMs for up to ten airports.
// @Summary Generate NOTAMs from weather
// @Description Fetches weather per airport, stores new NOTAMs and notifies the downstream webhook. Airports past the tenth are ignored and not validated.
// @Tags notams
// @Accept json
// @Produce json
// @Param airports body model.GenerateBatchRequest true "Airports"
// @Success 200 {object} model.BatchResult
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/notams/generate-batch [post]
func (h *NotamHandler) GenerateBatch(c *gin.Context) {
	var req model.GenerateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if len(req.Airports) > service.MaxBatchAirports {
		h.logger.Warnf("Ignoring %d airport(s) past the first %d", len(req.Airports)-service.MaxBatchAirports, service.MaxBatchAirports)
		req.Airports = req.Airports[:service.MaxBatchAirports]
	}
	for i := range req.Airports {
		if err := binding.Validator.ValidateStruct(&req.Airports[i]); err != nil {
			h.logger.Errorf("Invalid airport at index %d: %v", i, err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid request payload",
				"index":  i,
				"errors": validationErrors(err),
			})
			return
		}
	}

	h.logger.Logf("Generating NOTAMs for %d airport(s)", len(req.Airports))
	result, err := h.batchGenerator.GenerateBatch(c.Request.Context(), req.Airports)
	if err != nil {
		h.logger.Errorf("Batch NOTAM generation aborted: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate NOTAMs",
		})
		return
	}

	h.logger.Log(result.Message)
	c.JSON(http.StatusOK, result)
}

func (h *NotamHandler) respondLookupError(c *gin.Context, id uint, err error) {
	if errors.Is(err, mpostgres.ErrNotamNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "NOTAM not found"})
		return
	}
	h.logger.Errorf("Failed to load NOTAM %d: %v", id, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load NOTAM"})
}

func parseNotamID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
