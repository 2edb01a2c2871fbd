package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value      string
	expiration time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiration.IsZero() && now.After(e.expiration)
}

// MemoryCache is a process-local CacheRepository. Entries expire after
// ttl; a zero ttl keeps them forever.
type MemoryCache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:  ttl,
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}

	now := m.now()
	if !entry.expired(now) {
		return entry.value, true
	}

	// A Set may have replaced the entry since the read lock was released.
	m.mu.Lock()
	if current, ok := m.data[key]; ok && current.expired(now) {
		delete(m.data, key)
	}
	m.mu.Unlock()
	return "", false
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expiration = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.data[key] = entry
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
