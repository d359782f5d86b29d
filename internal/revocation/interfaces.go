package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store records revoked token identifiers until they expire.
type Store interface {
	// Add records id as revoked until expiresAt.
	Add(ctx context.Context, id string, expiresAt time.Time) error

	// Contains reports whether id is currently revoked.
	Contains(ctx context.Context, id string) (bool, error)

	// Cleanup removes entries whose expiry has passed and returns how many
	// were removed.
	Cleanup(ctx context.Context) (int, error)

	// Size returns the number of live entries.
	Size(ctx context.Context) (int, error)

	// Close releases the store's resources.
	Close() error
}

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config selects and tunes a revocation store.
type Config struct {
	// StoreType is StoreMemory or StoreRedis.
	StoreType string

	// MaxSize bounds the memory store.
	MaxSize int

	// CleanupInterval is how often expired entries are swept.
	CleanupInterval time.Duration

	// EnableAutoCleanup starts the background sweeper.
	EnableAutoCleanup bool

	// RedisAddr, RedisPassword, RedisDB and KeyPrefix configure the Redis store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// NewStore builds the store described by config. now supplies the current
// time to stores that track expiry themselves.
func NewStore(config Config, now func() time.Time) (Store, error) {
	switch config.StoreType {
	case "", StoreMemory:
		return NewMemoryStore(config.MaxSize, now), nil
	case StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		return NewRedisStore(client, config.KeyPrefix, now, true), nil
	default:
		return nil, fmt.Errorf("unknown revocation store type %q", config.StoreType)
	}
}
