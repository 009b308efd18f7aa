package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type counterEntry struct {
	count     int64
	expiresAt time.Time
}

// MemoryCache is an in-process Cache used when no Redis URL is
// configured. Expired entries are dropped lazily on read.
type MemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]memoryEntry
	counters map[string]counterEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries:  make(map[string]memoryEntry),
		counters: make(map[string]counterEntry),
	}
}

func (m *MemoryCache) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = memoryEntry{value: stored, expiresAt: expires}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.counters[key]
	if !ok || now.After(entry.expiresAt) {
		entry = counterEntry{expiresAt: now.Add(expiry)}
	}
	entry.count++
	m.counters[key] = entry
	return entry.count, nil
}
