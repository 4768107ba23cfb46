package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"notamadmin/internal/model"
	"notamadmin/internal/observability"
	"notamadmin/internal/pkg/gredis"

	"github.com/jonboulle/clockwork"
	"github.com/useinsider/go-pkg/inslogger"
	"github.com/useinsider/go-pkg/insredis"
)

// SchedulerStateRunning is the value stored under gredis.SchedulerStateKey
// while a scheduler loop is alive.
const SchedulerStateRunning = "running"

var ErrNoScheduledAirports = errors.New("no scheduled airports configured")

type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

type schedulerService struct {
	generator    BatchGenerator
	airports     []model.AirportDescriptor
	interval     time.Duration
	clock        clockwork.Clock
	cache        insredis.RedisInterface
	logger       inslogger.Interface
	metrics      *observability.Metrics
	cancel       context.CancelFunc
	done         chan struct{}
	isRunning    bool
	runningMutex sync.Mutex
}

func NewSchedulerService(
	generator BatchGenerator,
	airports []model.AirportDescriptor,
	interval time.Duration,
	clock clockwork.Clock,
	cache insredis.RedisInterface,
	logger inslogger.Interface,
	metrics *observability.Metrics,
) SchedulerService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &schedulerService{
		generator: generator,
		airports:  airports,
		interval:  interval,
		clock:     clock,
		cache:     cache,
		logger:    logger,
		metrics:   metrics,
	}
}

// Start runs a batch over the scheduled airports right away and then once
// per interval until Stop is called. While running, the state key is kept
// in Redis with a TTL of two intervals so a crashed process ages out.
func (s *schedulerService) Start() error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if s.isRunning {
		return nil
	}
	if len(s.airports) == 0 {
		return ErrNoScheduledAirports
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticker := s.clock.NewTicker(s.interval)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.isRunning = true
	s.setGauge(1)
	s.storeState()

	go func(done chan struct{}) {
		defer close(done)
		defer ticker.Stop()

		s.run(ctx)

		for {
			select {
			case <-ticker.Chan():
				s.storeState()
				s.run(ctx)
			case <-ctx.Done():
				return
			}
		}
	}(s.done)

	return nil
}

// Stop cancels the loop and waits for an in-flight batch to return.
func (s *schedulerService) Stop() error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if !s.isRunning {
		return nil
	}

	s.cancel()
	<-s.done
	s.isRunning = false
	s.setGauge(0)
	s.clearState()
	return nil
}

func (s *schedulerService) IsRunning() bool {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()
	return s.isRunning
}

func (s *schedulerService) run(ctx context.Context) {
	result, err := s.generator.GenerateBatch(ctx, s.airports)
	if err != nil {
		s.logger.Errorf("Error running scheduled NOTAM generation: %v", err)
		return
	}
	s.logger.Logf("Scheduled NOTAM generation: %s", result.Message)
}

func (s *schedulerService) storeState() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(gredis.SchedulerStateKey, SchedulerStateRunning, 2*s.interval).Err(); err != nil {
		s.logger.Warnf("Failed to cache scheduler state: %v", err)
	}
}

func (s *schedulerService) clearState() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(gredis.SchedulerStateKey).Err(); err != nil {
		s.logger.Warnf("Failed to remove scheduler state from cache: %v", err)
	}
}

func (s *schedulerService) setGauge(v float64) {
	if s.metrics != nil {
		s.metrics.SchedulerRunning.Set(v)
	}
}
