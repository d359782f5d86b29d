package jwt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cybergodev/jwt/internal/core"
	"github.com/cybergodev/jwt/internal/revocation"
)

// Verifier checks HS256 tokens. Like Signer it holds no secret; a Verifier
// built by a Processor additionally consults the processor's revocation list.
type Verifier struct {
	clock   Clock
	logger  *zap.Logger
	revoked *revocation.Manager
}

// NewVerifier returns a Verifier using the host clock unless WithClock is given.
func NewVerifier(opts ...Option) *Verifier {
	o := buildOptions(opts)
	return &Verifier{clock: o.clock, logger: o.logger}
}

// Verify is VerifyContext with a background context.
func (v *Verifier) Verify(tokenString, secret string) (Claims, error) {
	return v.VerifyContext(context.Background(), tokenString, secret)
}

// VerifyContext authenticates tokenString with secret and returns its
// claims. The checks run in a fixed order and stop at the first failure:
//
//  1. secret present (ErrMissingSecret)
//  2. exactly three segments (ErrMalformedToken)
//  3. signature matches, before anything is decoded (ErrInvalidSignature)
//  4. payload decodes to a JSON object (ErrMalformedToken)
//  5. exp, when present, is not before now (ErrExpiredToken)
//  6. not revoked, when a revocation list is attached (ErrTokenRevoked)
//
// The header's alg field is never read.
func (v *Verifier) VerifyContext(ctx context.Context, tokenString, secret string) (Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := core.Split(tokenString)
	if err != nil {
		v.reject("malformed")
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if !token.Verify(secret) {
		v.reject("signature")
		return nil, ErrInvalidSignature
	}

	var claims Claims
	if err := token.DecodeClaims(&claims); err != nil {
		v.reject("payload")
		return nil, &SegmentError{Segment: "payload", Message: "cannot decode", Err: err}
	}
	if claims == nil {
		v.reject("payload")
		return nil, &SegmentError{Segment: "payload", Message: "not a JSON object"}
	}

	if err := v.checkExpiry(claims); err != nil {
		return nil, err
	}

	if v.revoked != nil {
		revoked, err := v.revoked.IsRevoked(ctx, token.Signature)
		if err != nil {
			return nil, fmt.Errorf("revocation check failed: %w", err)
		}
		if revoked {
			v.reject("revoked")
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// checkExpiry enforces exp < now as expired; exp == now is still valid.
func (v *Verifier) checkExpiry(claims Claims) error {
	raw, exists := claims[ClaimExpiresAt]
	if !exists {
		return nil
	}

	exp, ok := toMillis(raw)
	if !ok {
		v.reject("exp")
		return &SegmentError{Segment: ClaimExpiresAt, Message: "not a number"}
	}

	now := v.clock.Now().UnixMilli()
	if exp < now {
		v.reject("expired")
		return fmt.Errorf("%w: exp %d is before %d", ErrExpiredToken, exp, now)
	}

	return nil
}

func (v *Verifier) reject(reason string) {
	v.logger.Debug("token rejected", zap.String("reason", reason))
}
