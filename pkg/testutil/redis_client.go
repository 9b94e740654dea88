package testutil

import (
	"context"
	"sync"
	"time"
)

// MockRedisClient is an in-memory xredis.Client whose behaviors can be
// overridden per test.
type MockRedisClient struct {
	ExistFunc func(ctx context.Context, key string) (bool, error)
	GetFunc   func(ctx context.Context, key string) (string, error)
	SetFunc   func(ctx context.Context, key, value string, ttl time.Duration) error

	mutex  sync.Mutex
	values map[string]string
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{values: make(map[string]string)}
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, ok := m.values[key]
	return ok, nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.values[key], nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.values[key] = value
	return nil
}
