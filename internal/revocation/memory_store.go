package revocation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var errStoreClosed = errors.New("revocation store is closed")

type memoryStore struct {
	entries map[string]time.Time
	now     func() time.Time

	mu      sync.RWMutex
	maxSize int
	closed  bool
}

// NewMemoryStore creates an in-process store holding at most maxSize entries.
// When full, expired entries are swept first and then the soonest-expiring
// tenth of the store is evicted.
func NewMemoryStore(maxSize int, now func() time.Time) Store {
	if maxSize <= 0 {
		maxSize = 100000
	}
	if now == nil {
		now = time.Now
	}

	return &memoryStore{
		entries: make(map[string]time.Time, min(maxSize, 1024)),
		now:     now,
		maxSize: maxSize,
	}
}

func (m *memoryStore) Add(_ context.Context, id string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errStoreClosed
	}

	if _, exists := m.entries[id]; !exists && len(m.entries) >= m.maxSize {
		m.cleanupExpiredUnsafe(m.now())

		if len(m.entries) >= m.maxSize {
			m.evictSoonestUnsafe(max(m.maxSize/10, 1))
		}
	}

	m.entries[id] = expiresAt
	return nil
}

func (m *memoryStore) Contains(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, errStoreClosed
	}

	expiresAt, exists := m.entries[id]
	if !exists {
		return false, nil
	}

	// Expired entries stay until the next sweep but no longer count.
	return !m.now().After(expiresAt), nil
}

func (m *memoryStore) Cleanup(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, errStoreClosed
	}

	return m.cleanupExpiredUnsafe(m.now()), nil
}

func (m *memoryStore) Size(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, errStoreClosed
	}

	return len(m.entries), nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	m.entries = nil

	return nil
}

// cleanupExpiredUnsafe must be called with the write lock held.
func (m *memoryStore) cleanupExpiredUnsafe(now time.Time) int {
	cleaned := 0
	for id, expiresAt := range m.entries {
		if now.After(expiresAt) {
			delete(m.entries, id)
			cleaned++
		}
	}
	return cleaned
}

// evictSoonestUnsafe must be called with the write lock held.
func (m *memoryStore) evictSoonestUnsafe(count int) {
	type entry struct {
		id        string
		expiresAt time.Time
	}

	all := make([]entry, 0, len(m.entries))
	for id, expiresAt := range m.entries {
		all = append(all, entry{id, expiresAt})
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].expiresAt.Before(all[j].expiresAt)
	})

	for i := 0; i < len(all) && i < count; i++ {
		delete(m.entries, all[i].id)
	}
}
