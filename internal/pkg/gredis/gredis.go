package gredis

import (
	"fmt"
	"time"

	"notamadmin/internal/config"

	"github.com/go-redis/redis"
	"github.com/useinsider/go-pkg/inslogger"
	"github.com/useinsider/go-pkg/insredis"
)

// Keys shared by the handlers and the batch workflow.
const (
	NotamListKey      = "notams:list"
	SchedulerStateKey = "scheduler:state"
)

// IsNil reports whether err is the "key does not exist" reply.
func IsNil(err error) bool {
	return err == redis.Nil
}

// NewClient connects to Redis. It returns a nil client when no host is
// configured, which callers treat as "caching disabled".
//
// insredis.Config has no password field, so an authenticated server is
// dialled with go-redis options directly.
func NewClient(cfg config.RedisConfig, logger inslogger.Interface) (insredis.RedisInterface, error) {
	if !cfg.Enabled() {
		logger.Warn("REDIS_HOST not set, caching disabled")
		return nil, nil
	}

	var client *redis.Client
	if cfg.Password == "" {
		client = insredis.Init(insredis.Config{
			RedisHost:   cfg.Addr(),
			DialTimeout: 5 * time.Second,
			ReadTimeout: 3 * time.Second,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:        cfg.Addr(),
			Password:    cfg.Password,
			DialTimeout: 5 * time.Second,
			ReadTimeout: 3 * time.Second,
		})
	}

	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr(), err)
	}

	logger.Logf("connected to Redis at %s", cfg.Addr())
	return client, nil
}
