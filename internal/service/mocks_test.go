package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"notamadmin/internal/model"
	"notamadmin/internal/mpostgres"

	"github.com/go-redis/redis"
	"github.com/stretchr/testify/mock"
	"github.com/useinsider/go-pkg/insredis"
)

// memoryNotamService is an in-memory NotamService. When airports is set,
// CreateNotam rejects airport ids missing from it like the foreign key does.
type memoryNotamService struct {
	mu        sync.Mutex
	notams    []model.Notam
	airports  map[string]bool
	createErr error
}

func (m *memoryNotamService) ListNotams(_ context.Context) ([]model.Notam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Notam, len(m.notams))
	for i := range m.notams {
		out[len(m.notams)-1-i] = m.notams[i]
	}
	return out, nil
}

func (m *memoryNotamService) GetNotam(_ context.Context, id uint) (model.Notam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notams {
		if n.ID == id {
			return n, nil
		}
	}
	return model.Notam{}, mpostgres.ErrNotamNotFound
}

func (m *memoryNotamService) UpdateNotamMessage(_ context.Context, id uint, message string) (model.Notam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notams {
		if m.notams[i].ID == id {
			m.notams[i].Message = message
			return m.notams[i], nil
		}
	}
	return model.Notam{}, mpostgres.ErrNotamNotFound
}

func (m *memoryNotamService) FindNotamByMessage(_ context.Context, airportID, message string) (model.Notam, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notams {
		if n.AirportID == airportID && n.Message == message {
			return n, true, nil
		}
	}
	return model.Notam{}, false, nil
}

func (m *memoryNotamService) CreateNotam(_ context.Context, n model.Notam) (model.Notam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return model.Notam{}, m.createErr
	}
	if m.airports != nil && !m.airports[n.AirportID] {
		return model.Notam{}, fmt.Errorf("create notam for %s: %w", n.AirportID, mpostgres.ErrUnknownAirport)
	}
	n.ID = uint(len(m.notams) + 1)
	m.notams = append(m.notams, n)
	return n, nil
}

func (m *memoryNotamService) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notams)
}

type MockWeatherClient struct {
	mock.Mock
}

func (m *MockWeatherClient) Fetch(ctx context.Context, location string) (WeatherReport, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(WeatherReport), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyCreated(ctx context.Context, notam model.Notam) error {
	return m.Called(ctx, notam).Error(0)
}

func (m *MockNotifier) NotifyUpdated(ctx context.Context, notam model.Notam) error {
	return m.Called(ctx, notam).Error(0)
}

// fakeRedis is a map-backed insredis.RedisInterface covering Get, Set and Del.
type fakeRedis struct {
	insredis.RedisInterface
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = fmt.Sprint(value)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeRedis) ttl(key string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ttls[key]
}
