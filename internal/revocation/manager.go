package revocation

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrManagerClosed is returned by every Manager method after Close.
var ErrManagerClosed = errors.New("revocation manager is closed")

// Manager wraps a Store and, optionally, a background sweeper.
type Manager struct {
	store  Store
	logger *zap.Logger
	mu     sync.RWMutex

	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	cleanupWg     sync.WaitGroup

	closed bool
}

// NewManager takes ownership of store. A nil logger disables logging.
func NewManager(store Store, config Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		store:       store,
		logger:      logger,
		stopCleanup: make(chan struct{}),
	}

	if config.EnableAutoCleanup && config.CleanupInterval > 0 {
		m.startAutoCleanup(config.CleanupInterval)
	}

	return m
}

// Revoke marks id as revoked until expiresAt.
func (m *Manager) Revoke(ctx context.Context, id string, expiresAt time.Time) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrManagerClosed
	}

	if id == "" {
		return errors.New("revocation id cannot be empty")
	}

	return m.store.Add(ctx, id, expiresAt)
}

// IsRevoked reports whether id is currently revoked.
func (m *Manager) IsRevoked(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, ErrManagerClosed
	}

	if id == "" {
		return false, nil
	}

	return m.store.Contains(ctx, id)
}

// Size returns the number of live revocations.
func (m *Manager) Size(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrManagerClosed
	}

	return m.store.Size(ctx)
}

// Close stops the sweeper and closes the store. It is idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true

	if m.cleanupTicker != nil {
		m.cleanupTicker.Stop()
		close(m.stopCleanup)
		m.cleanupWg.Wait()
	}

	return m.store.Close()
}

func (m *Manager) startAutoCleanup(interval time.Duration) {
	m.cleanupTicker = time.NewTicker(interval)
	m.cleanupWg.Add(1)

	go func() {
		defer m.cleanupWg.Done()

		for {
			select {
			case <-m.cleanupTicker.C:
				m.performCleanup()
			case <-m.stopCleanup:
				return
			}
		}
	}()
}

func (m *Manager) performCleanup() {
	removed, err := m.store.Cleanup(context.Background())
	if err != nil {
		m.logger.Warn("revocation cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		m.logger.Debug("revocation cleanup", zap.Int("removed", removed))
	}
}
