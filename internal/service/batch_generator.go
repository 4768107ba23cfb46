package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notamadmin/internal/model"
	"notamadmin/internal/mpostgres"
	"notamadmin/internal/notamgen"
	"notamadmin/internal/observability"
	"notamadmin/internal/pkg/gredis"

	"github.com/useinsider/go-pkg/inslogger"
	"github.com/useinsider/go-pkg/insredis"
)

// MaxBatchAirports caps a single batch run; extra airports are dropped.
const MaxBatchAirports = 10

const (
	reasonWebhookFailed  = "Webhook failed"
	reasonInvalidWeather = "Invalid or missing weather data"
	reasonDuplicate      = "Duplicate NOTAM skipped"
	reasonUnknownAirport = "Unknown airport"
)

type BatchGenerator interface {
	GenerateBatch(ctx context.Context, airports []model.AirportDescriptor) (model.BatchResult, error)
}

type batchGenerator struct {
	notamService mpostgres.NotamService
	weather      WeatherClient
	notifier     NotamNotifier
	cache        insredis.RedisInterface
	logger       inslogger.Interface
	metrics      *observability.Metrics
}

func NewBatchGenerator(
	notamService mpostgres.NotamService,
	weather WeatherClient,
	notifier NotamNotifier,
	cache insredis.RedisInterface,
	logger inslogger.Interface,
	metrics *observability.Metrics,
) BatchGenerator {
	return &batchGenerator{
		notamService: notamService,
		weather:      weather,
		notifier:     notifier,
		cache:        cache,
		logger:       logger,
		metrics:      metrics,
	}
}

// GenerateBatch creates one weather NOTAM per airport, in order. Item
// failures are collected in the result; only a persistence error stops
// the run. The cached NOTAM list is dropped whenever a record was created,
// whichever caller started the run.
func (g *batchGenerator) GenerateBatch(ctx context.Context, airports []model.AirportDescriptor) (model.BatchResult, error) {
	result, err := g.generate(ctx, airports)
	if result.Generated > 0 {
		g.invalidateListCache()
	}
	return result, err
}

func (g *batchGenerator) generate(ctx context.Context, airports []model.AirportDescriptor) (model.BatchResult, error) {
	start := time.Now()
	if len(airports) > MaxBatchAirports {
		airports = airports[:MaxBatchAirports]
	}

	result := model.BatchResult{Errors: []string{}}

	for _, airport := range airports {
		airport.IATACode = strings.ToUpper(strings.TrimSpace(airport.IATACode))

		report, err := g.weather.Fetch(ctx, airport.LocationQuery())
		if err != nil {
			reason := reasonWebhookFailed
			outcome := "webhook_failed"
			if errors.Is(err, ErrInvalidWeatherData) {
				reason = reasonInvalidWeather
				outcome = "invalid_weather"
			}
			g.logger.Warnf("Weather lookup for %s failed: %v", airport.IATACode, err)
			result.Failed++
			result.Errors = append(result.Errors, itemError(airport, reason))
			g.observeItem(outcome)
			continue
		}

		message := notamgen.Compose(airport.City, airport.IATACode, report.Description, report.WindSpeed)

		_, exists, err := g.notamService.FindNotamByMessage(ctx, airport.IATACode, message)
		if err != nil {
			return result, fmt.Errorf("duplicate check for %s: %w", airport.IATACode, err)
		}
		if exists {
			g.logger.Logf("Skipping duplicate NOTAM for %s", airport.IATACode)
			result.Skipped++
			result.Errors = append(result.Errors, itemError(airport, reasonDuplicate))
			g.observeItem("duplicate")
			continue
		}

		notam, err := g.notamService.CreateNotam(ctx, model.Notam{
			AirportID: airport.IATACode,
			City:      airport.City,
			Message:   message,
		})
		if errors.Is(err, mpostgres.ErrUnknownAirport) {
			g.logger.Warnf("No airport row for %s, NOTAM not stored", airport.IATACode)
			result.Failed++
			result.Errors = append(result.Errors, itemError(airport, reasonUnknownAirport))
			g.observeItem("unknown_airport")
			continue
		}
		if err != nil {
			return result, fmt.Errorf("save notam for %s: %w", airport.IATACode, err)
		}
		g.logger.Logf("Created NOTAM %d for %s", notam.ID, airport.IATACode)

		if err := g.notifier.NotifyCreated(ctx, notam); err != nil {
			g.logger.Errorf("Failed to notify downstream of NOTAM %d: %v", notam.ID, err)
		}

		result.Generated++
		g.observeItem("generated")
	}

	result.Success = result.Generated > 0
	result.Message = fmt.Sprintf("%d NOTAM(s) generated, %d failed.", result.Generated, result.Failed)

	if g.metrics != nil {
		g.metrics.BatchRuns.Inc()
		g.metrics.NotamsGenerated.Add(float64(result.Generated))
		g.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}
	return result, nil
}

func (g *batchGenerator) invalidateListCache() {
	if g.cache == nil {
		return
	}
	if err := g.cache.Del(gredis.NotamListKey).Err(); err != nil {
		g.logger.Warnf("Failed to clear NOTAM list cache: %v", err)
	}
}

func (g *batchGenerator) observeItem(outcome string) {
	if g.metrics != nil {
		g.metrics.BatchItemResults.WithLabelValues(outcome).Inc()
	}
}

func itemError(airport model.AirportDescriptor, reason string) string {
	return fmt.Sprintf("%s – %s", airport.IATACode, reason)
}
