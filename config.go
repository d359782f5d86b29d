package jwt

import (
	"fmt"
	"time"

	"github.com/cybergodev/jwt/internal/revocation"
)

// Config represents Processor configuration. The env tags allow loading it
// with github.com/caarlos0/env.
type Config struct {
	// TokenTTL is the lifetime of tokens minted by Processor.Issue.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h" yaml:"token_ttl" json:"token_ttl"`

	// EnableRevocation attaches a revocation list to the processor.
	EnableRevocation bool `env:"ENABLE_REVOCATION" yaml:"enable_revocation" json:"enable_revocation"`

	// Revocation configures the revocation list when enabled.
	Revocation RevocationConfig `envPrefix:"REVOCATION_" yaml:"revocation" json:"revocation"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		TokenTTL:         24 * time.Hour,
		EnableRevocation: false,
		Revocation:       DefaultRevocationConfig(),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token TTL must be positive", ErrInvalidConfig)
	}

	if !c.EnableRevocation {
		return nil
	}

	r := c.Revocation
	switch r.StoreType {
	case revocation.StoreMemory, "":
		if r.MaxSize < 0 {
			return fmt.Errorf("%w: revocation max size cannot be negative", ErrInvalidConfig)
		}
	case revocation.StoreRedis:
		if r.RedisAddr == "" {
			return fmt.Errorf("%w: redis address is required for the redis revocation store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown revocation store %q", ErrInvalidConfig, r.StoreType)
	}

	if r.EnableAutoCleanup && r.CleanupInterval <= 0 {
		return fmt.Errorf("%w: cleanup interval must be positive when auto cleanup is enabled", ErrInvalidConfig)
	}

	return nil
}
