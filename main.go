package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	_ "notamadmin/docs"
	"notamadmin/internal/config"
	"notamadmin/internal/handler"
	"notamadmin/internal/mpostgres"
	"notamadmin/internal/observability"
	"notamadmin/internal/pkg/gpostgresql"
	"notamadmin/internal/pkg/gredis"
	"notamadmin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/useinsider/go-pkg/inslogger"
)

// @title NOTAM Admin API
// @version 1.0
// @description API for listing, editing and weather-driven generation of NOTAMs

// @host localhost:8080
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appConfig := config.ReadEnvironment(ctx)
	logger := newLogger(appConfig.LogLevel)

	pool, err := gpostgresql.NewDBConnection(ctx, &appConfig.Database, logger)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer gpostgresql.Close(pool, logger)

	if err := gpostgresql.RunMigrations(ctx, pool, logger); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	cache, err := gredis.NewClient(appConfig.Redis, logger)
	if err != nil {
		logger.Warnf("Redis unavailable, caching disabled: %v", err)
	} else if cache != nil {
		defer cache.Close()
	}

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()
	httpClient := service.NewHTTPClient(appConfig.Timeout)

	notamService := mpostgres.NewNotamService(pool)
	weather := service.NewWeatherClient(httpClient, appConfig.WeatherURL, metrics)
	notifier := service.NewNotamNotifier(httpClient, appConfig.NotamCreatedURL, appConfig.NotamUpdatedURL, clock, metrics)
	generator := service.NewBatchGenerator(notamService, weather, notifier, cache, logger, metrics)

	// Load already validated the airport list.
	airports, _ := appConfig.ScheduledAirports()
	scheduler := service.NewSchedulerService(generator, airports, appConfig.Interval, clock, cache, logger, metrics)
	if appConfig.AutoStart {
		if err := scheduler.Start(); err != nil {
			logger.Errorf("Failed to start scheduler: %v", err)
		}
	}
	defer scheduler.Stop()

	notamHandler := handler.NewNotamHandler(notamService, generator, notifier, scheduler, logger, cache, metrics)

	router := gin.Default()
	handler.RegisterRoutes(router, notamHandler, gpostgresql.Pinger{Pool: pool})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", appConfig.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Logf("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}
}

func newLogger(level string) inslogger.Interface {
	if level == "debug" {
		return inslogger.NewLogger(inslogger.Debug)
	}
	return inslogger.NewLogger(inslogger.Info)
}
