package repository

import (
	"context"
	"sync"
	"time"
)

// Keys persisted per visitor across reloads.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)

// StorageRepository is a small key/value store scoped by visitor id.
type StorageRepository interface {
	Get(ctx context.Context, sid, key string) (string, bool, error)
	Set(ctx context.Context, sid, key, value string) error
	Delete(ctx context.Context, sid string, keys ...string) error
}

// Sweeper is implemented by storage drivers that expire entries themselves.
type Sweeper interface {
	Sweep() int
}

type memoryBucket struct {
	values  map[string]string
	touched time.Time
}

type memoryStorage struct {
	mu   sync.Mutex
	data map[string]*memoryBucket
	now  func() time.Time
}

// NewMemoryStorage keeps values in process; they survive page reloads but not restarts.
// A visitor untouched for storageTTL is dropped on Sweep, like the redis key expiry.
func NewMemoryStorage() StorageRepository {
	return &memoryStorage{
		data: make(map[string]*memoryBucket),
		now:  time.Now,
	}
}

func (m *memoryStorage) Get(_ context.Context, sid, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.data[sid]
	if !ok {
		return "", false, nil
	}
	bucket.touched = m.now()
	v, ok := bucket.values[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(_ context.Context, sid, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.data[sid]
	if !ok {
		bucket = &memoryBucket{values: make(map[string]string)}
		m.data[sid] = bucket
	}
	bucket.values[key] = value
	bucket.touched = m.now()
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, sid string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.data[sid]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(bucket.values, k)
	}
	if len(bucket.values) == 0 {
		delete(m.data, sid)
	}
	return nil
}

// Sweep drops visitors untouched for storageTTL and returns how many were removed.
func (m *memoryStorage) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-storageTTL)
	removed := 0
	for sid, bucket := range m.data {
		if bucket.touched.Before(cutoff) {
			delete(m.data, sid)
			removed++
		}
	}
	return removed
}
