package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store with per-entry TTLs. It serves as the
// fallback when Redis is unavailable and as the test double.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		s.dropExpired(key, item)
		return nil, false
	}
	return item.data, true
}

// dropExpired removes key only while it still holds the observed entry. A
// value written for the same key after the read lock was released survives.
func (s *MemoryStore) dropExpired(key string, observed memoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[key]
	if ok && current.expiresAt.Equal(observed.expiresAt) {
		delete(s.items, key)
	}
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = memoryItem{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
	return true
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.items, key)
	}
	return true
}

// DeletePattern supports prefix patterns of the form "prefix*".
func (s *MemoryStore) DeletePattern(_ context.Context, pattern string) bool {
	prefix := strings.TrimSuffix(pattern, "*")

	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
	return true
}

// CleanExpired removes expired entries and returns how many were dropped.
func (s *MemoryStore) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, item := range s.items {
		if now.After(item.expiresAt) {
			delete(s.items, key)
			removed++
		}
	}
	return removed
}

// Size returns the current number of entries.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
