package config

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"notamadmin/internal/model"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

var AppEnv App

type App struct {
	Config
	WebhookConfig
	SchedulerConfig
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT,default=8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST,required"`
	Port     int    `env:"DB_PORT,required"`
	User     string `env:"DB_USER,required"`
	Password string `env:"DB_PASSWORD,required"`
	Name     string `env:"DB_NAME,required"`
}

// RedisConfig is optional; caching is disabled when Host is empty.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT,default=6379"`
	Password string `env:"REDIS_PASSWORD"`
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type WebhookConfig struct {
	WeatherURL      string        `env:"WEATHER_WEBHOOK_URL,required"`
	NotamCreatedURL string        `env:"NOTAM_CREATED_WEBHOOK_URL,required"`
	NotamUpdatedURL string        `env:"NOTAM_UPDATED_WEBHOOK_URL,required"`
	Timeout         time.Duration `env:"WEBHOOK_TIMEOUT,default=10s"`
}

type SchedulerConfig struct {
	Interval  time.Duration `env:"SCHEDULER_INTERVAL,default=1h"`
	Airports  []string      `env:"SCHEDULER_AIRPORTS"`
	AutoStart bool          `env:"SCHEDULER_AUTOSTART,default=false"`
}

// ScheduledAirports parses SCHEDULER_AIRPORTS entries of the form
// "IATA|City" or "IATA|City|CountryCode".
func (s SchedulerConfig) ScheduledAirports() ([]model.AirportDescriptor, error) {
	airports := make([]model.AirportDescriptor, 0, len(s.Airports))
	for _, raw := range s.Airports {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, "|")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("invalid scheduled airport %q: want IATA|City[|CountryCode]", raw)
		}
		a := model.AirportDescriptor{
			IATACode: strings.ToUpper(strings.TrimSpace(parts[0])),
			City:     strings.TrimSpace(parts[1]),
		}
		if len(parts) == 3 {
			a.CountryCode = strings.TrimSpace(parts[2])
		}
		if a.IATACode == "" || a.City == "" {
			return nil, fmt.Errorf("invalid scheduled airport %q: IATA code and city are required", raw)
		}
		if !isIATACode(a.IATACode) {
			return nil, fmt.Errorf("invalid scheduled airport %q: IATA code must be three letters", raw)
		}
		airports = append(airports, a)
	}
	return airports, nil
}

func isIATACode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Load reads the environment (and a .env file when present) into an App.
func Load(ctx context.Context) (*App, error) {
	_ = godotenv.Load()
	var config App
	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("processing environment variables: %w", err)
	}
	if config.Timeout <= 0 {
		return nil, fmt.Errorf("WEBHOOK_TIMEOUT must be positive, got %s", config.Timeout)
	}
	if config.Interval <= 0 {
		return nil, fmt.Errorf("SCHEDULER_INTERVAL must be positive, got %s", config.Interval)
	}
	if _, err := config.ScheduledAirports(); err != nil {
		return nil, err
	}
	return &config, nil
}

func ReadEnvironment(ctx context.Context) *App {
	config, err := Load(ctx)
	if err != nil {
		log.Fatalf("Error processing environment variables: %v", err)
	}
	AppEnv = *config
	return config
}
