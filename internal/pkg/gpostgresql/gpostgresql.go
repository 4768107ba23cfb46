package gpostgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notamadmin/internal/config"

	"github.com/useinsider/go-pkg/inslogger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnString(dbConfig *config.DatabaseConfig) string {
	return strings.TrimSpace(fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d",
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Host,
		dbConfig.Port,
	))
}

func NewDBConnection(ctx context.Context, dbConfig *config.DatabaseConfig, logger inslogger.Interface) (*pgxpool.Pool, error) {
	parseConfig, err := pgxpool.ParseConfig(ConnString(dbConfig))
	if err != nil {
		logger.Errorf("Error parsing pool parseConfig: %v", err)
		return nil, err
	}

	parseConfig.MaxConns = 10
	parseConfig.MinConns = 2
	parseConfig.MaxConnLifetime = 30 * time.Minute
	parseConfig.MaxConnIdleTime = 10 * time.Minute
	parseConfig.HealthCheckPeriod = 2 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, parseConfig)
	if err != nil {
		logger.Errorf("error connecting to database: %v", err)
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		logger.Errorf("error pinging database: %v", err)
		return nil, err
	}

	logger.Log("connected to PostgreSQL")
	return db, nil
}

func Close(pool *pgxpool.Pool, logger inslogger.Interface) {
	if pool != nil {
		logger.Log("Closing PostgreSQL connection pool")
		pool.Close()
	}
}

// Pinger reports database readiness.
type Pinger struct {
	Pool *pgxpool.Pool
}

func (p Pinger) CheckReadiness(ctx context.Context) error {
	if p.Pool == nil {
		return fmt.Errorf("database pool not initialised")
	}
	return p.Pool.Ping(ctx)
}
