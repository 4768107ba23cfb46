package handler

import (
	"context"
	"sync"
	"time"

	"notamadmin/internal/model"

	"github.com/go-redis/redis"
	"github.com/stretchr/testify/mock"
	"github.com/useinsider/go-pkg/insredis"
)

// Mock dependencies
type MockNotamService struct {
	mock.Mock
}

func (m *MockNotamService) ListNotams(ctx context.Context) ([]model.Notam, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Notam), args.Error(1)
}

func (m *MockNotamService) GetNotam(ctx context.Context, id uint) (model.Notam, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Notam), args.Error(1)
}

func (m *MockNotamService) UpdateNotamMessage(ctx context.Context, id uint, message string) (model.Notam, error) {
	args := m.Called(ctx, id, message)
	return args.Get(0).(model.Notam), args.Error(1)
}

func (m *MockNotamService) FindNotamByMessage(ctx context.Context, airportID, message string) (model.Notam, bool, error) {
	args := m.Called(ctx, airportID, message)
	return args.Get(0).(model.Notam), args.Bool(1), args.Error(2)
}

func (m *MockNotamService) CreateNotam(ctx context.Context, notam model.Notam) (model.Notam, error) {
	args := m.Called(ctx, notam)
	return args.Get(0).(model.Notam), args.Error(1)
}

type MockBatchGenerator struct {
	mock.Mock
}

func (m *MockBatchGenerator) GenerateBatch(ctx context.Context, airports []model.AirportDescriptor) (model.BatchResult, error) {
	args := m.Called(ctx, airports)
	return args.Get(0).(model.BatchResult), args.Error(1)
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

type MockSchedulerService struct {
	mock.Mock
}

func (m *MockSchedulerService) Start() error {
	return m.Called().Error(0)
}

func (m *MockSchedulerService) Stop() error {
	return m.Called().Error(0)
}

func (m *MockSchedulerService) IsRunning() bool {
	args := m.Called()
	return args.Bool(0)
}

// fakeRedis is a map-backed insredis.RedisInterface. Only Get, Set and Del
// are implemented; getErr, when set, is returned by every Get.
type fakeRedis struct {
	insredis.RedisInterface
	mu     sync.Mutex
	data   map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
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

func (f *fakeRedis) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}
