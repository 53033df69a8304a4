package iocache

import (
	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetCacheStore implements the CacheManager interface.
func (m *MockCacheManager) GetCacheStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Get(1).(int64), args.Error(2)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, ts int64) error {
	args := m.Called(key, data, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// GetAllEntries implements the CacheStore interface.
func (m *MockCacheStore) GetAllEntries() ([]schema.CacheRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.CacheRecord)
	return records, args.Error(1)
}
