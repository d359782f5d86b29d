package jwt

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cybergodev/jwt/internal/core"
)

// Signer mints HS256 tokens. It holds no secret and no mutable state, so a
// single Signer may be shared between goroutines.
type Signer struct {
	clock  Clock
	logger *zap.Logger
}

// NewSigner returns a Signer using the host clock unless WithClock is given.
func NewSigner(opts ...Option) *Signer {
	o := buildOptions(opts)
	return &Signer{clock: o.clock, logger: o.logger}
}

// Sign builds a token carrying claims plus iat (now) and exp (expiresAt),
// both in milliseconds since the Unix epoch. iat and exp always replace any
// caller-supplied values of the same name; claims itself is not modified.
// expiresAt is not validated here: expiry is enforced only by Verify.
func (s *Signer) Sign(claims Claims, expiresAt int64, secret string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	payload := claims.Clone()
	payload[ClaimIssuedAt] = s.clock.Now().UnixMilli()
	payload[ClaimExpiresAt] = expiresAt

	token, err := core.SignedString(newHeader(), payload, secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}

	s.logger.Debug("token signed",
		zap.Int("claims", len(payload)),
		zap.Int64(ClaimExpiresAt, expiresAt),
	)

	return token, nil
}
