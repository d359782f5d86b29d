package jwt

import (
	"time"

	"github.com/cybergodev/jwt/internal/revocation"
)

// Revocation store backends.
const (
	RevocationStoreMemory = revocation.StoreMemory
	RevocationStoreRedis  = revocation.StoreRedis
)

// RevocationConfig configures the revocation list. Tokens are revoked by
// their signature segment and stay revoked until their exp.
type RevocationConfig struct {
	// StoreType is RevocationStoreMemory or RevocationStoreRedis.
	StoreType string `env:"STORE" envDefault:"memory" yaml:"store" json:"store"`

	// MaxSize bounds the memory store.
	MaxSize int `env:"MAX_SIZE" envDefault:"100000" yaml:"max_size" json:"max_size"`

	// CleanupInterval specifies how often expired entries are swept.
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m" yaml:"cleanup_interval" json:"cleanup_interval"`

	// EnableAutoCleanup runs the sweeper in the background.
	EnableAutoCleanup bool `env:"AUTO_CLEANUP" envDefault:"true" yaml:"auto_cleanup" json:"auto_cleanup"`

	RedisAddr     string `env:"REDIS_ADDR" yaml:"redis_addr" json:"redis_addr"`
	RedisPassword string `env:"REDIS_PASSWORD" yaml:"-" json:"-"`
	RedisDB       int    `env:"REDIS_DB" yaml:"redis_db" json:"redis_db"`
	KeyPrefix     string `env:"KEY_PREFIX" envDefault:"jwt:revoked:" yaml:"key_prefix" json:"key_prefix"`
}

// DefaultRevocationConfig returns an in-memory configuration.
func DefaultRevocationConfig() RevocationConfig {
	return RevocationConfig{
		StoreType:         RevocationStoreMemory,
		MaxSize:           100000,
		CleanupInterval:   5 * time.Minute,
		EnableAutoCleanup: true,
		KeyPrefix:         "jwt:revoked:",
	}
}

func (c RevocationConfig) internal() revocation.Config {
	return revocation.Config{
		StoreType:         c.StoreType,
		MaxSize:           c.MaxSize,
		CleanupInterval:   c.CleanupInterval,
		EnableAutoCleanup: c.EnableAutoCleanup,
		RedisAddr:         c.RedisAddr,
		RedisPassword:     c.RedisPassword,
		RedisDB:           c.RedisDB,
		KeyPrefix:         c.KeyPrefix,
	}
}
