package jwt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cybergodev/jwt/internal/core"
	"github.com/cybergodev/jwt/internal/revocation"
)

// Processor bundles a Signer and Verifier sharing one clock, a default token
// lifetime and an optional revocation list. Secrets are still passed on every
// call; a Processor never stores one.
type Processor struct {
	tokenTTL time.Duration
	clock    Clock
	logger   *zap.Logger
	signer   *Signer
	verifier *Verifier
	revoked  *revocation.Manager

	mu     sync.RWMutex
	closed bool
}

// NewProcessor validates cfg and creates a Processor. When revocation is
// enabled the configured store is opened here and released by Close.
func NewProcessor(cfg Config, opts ...Option) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	o := buildOptions(opts)

	var revoked *revocation.Manager
	if cfg.EnableRevocation {
		internalConfig := cfg.Revocation.internal()
		store, err := revocation.NewStore(internalConfig, o.clock.Now)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		revoked = revocation.NewManager(store, internalConfig, o.logger)
	}

	return &Processor{
		tokenTTL: cfg.TokenTTL,
		clock:    o.clock,
		logger:   o.logger,
		signer:   &Signer{clock: o.clock, logger: o.logger},
		verifier: &Verifier{clock: o.clock, logger: o.logger, revoked: revoked},
		revoked:  revoked,
	}, nil
}

// Issue mints a token expiring TokenTTL from now.
func (p *Processor) Issue(claims Claims, secret string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return "", err
	}

	return p.signer.Sign(claims, ExpiresIn(p.clock, p.tokenTTL), secret)
}

// Sign mints a token with an explicit exp. See Signer.Sign.
func (p *Processor) Sign(claims Claims, expiresAt int64, secret string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return "", err
	}

	return p.signer.Sign(claims, expiresAt, secret)
}

// Verify authenticates tokenString and checks it against the revocation list
// when one is configured. See Verifier.VerifyContext.
func (p *Processor) Verify(ctx context.Context, tokenString, secret string) (Claims, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return nil, err
	}

	return p.verifier.VerifyContext(ctx, tokenString, secret)
}

// Refresh verifies tokenString and issues a replacement carrying the same
// claims with a fresh iat and an exp TokenTTL from now.
func (p *Processor) Refresh(ctx context.Context, tokenString, secret string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return "", err
	}

	claims, err := p.verifier.VerifyContext(ctx, tokenString, secret)
	if err != nil {
		return "", err
	}

	return p.signer.Sign(claims, ExpiresIn(p.clock, p.tokenTTL), secret)
}

// Revoke verifies tokenString and records it as revoked until its exp. A
// token without exp stays revoked for TokenTTL. Revoking a token twice is
// not an error; revoking an expired one fails with ErrExpiredToken.
func (p *Processor) Revoke(ctx context.Context, tokenString, secret string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return err
	}

	if p.revoked == nil {
		return fmt.Errorf("%w: revocation is not enabled", ErrInvalidConfig)
	}

	claims, err := p.verifier.VerifyContext(ctx, tokenString, secret)
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			return nil
		}
		return err
	}

	expiresAt, ok := claims.ExpiresAt()
	if !ok {
		expiresAt = p.clock.Now().Add(p.tokenTTL)
	}

	token, err := core.Split(tokenString)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if err := p.revoked.Revoke(ctx, token.Signature, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	p.logger.Debug("token revoked", zap.Time(ClaimExpiresAt, expiresAt))
	return nil
}

// IsRevoked reports whether tokenString is on the revocation list. It does
// not authenticate the token. Without a revocation list it always reports
// false.
func (p *Processor) IsRevoked(ctx context.Context, tokenString string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return false, err
	}

	if p.revoked == nil {
		return false, nil
	}

	token, err := core.Split(tokenString)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return p.revoked.IsRevoked(ctx, token.Signature)
}

// RevokedCount returns the number of live revocations.
func (p *Processor) RevokedCount(ctx context.Context) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return 0, err
	}

	if p.revoked == nil {
		return 0, nil
	}

	return p.revoked.Size(ctx)
}

// Close releases the revocation store.
func (p *Processor) Close() error {
	return p.CloseWithContext(context.Background())
}

// CloseWithContext releases the revocation store, giving up when ctx is done.
func (p *Processor) CloseWithContext(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrProcessorClosed
	}

	var closeErr error

	if p.revoked != nil {
		done := make(chan error, 1)
		go func() {
			done <- p.revoked.Close()
		}()

		select {
		case err := <-done:
			if err != nil {
				closeErr = fmt.Errorf("revocation store close failed: %w", err)
			}
		case <-ctx.Done():
			closeErr = fmt.Errorf("revocation store close timeout: %w", ctx.Err())
		}
	}

	p.closed = true
	return closeErr
}

// IsClosed returns true if the processor has been closed.
func (p *Processor) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

func (p *Processor) checkClosed() error {
	if p.closed {
		return ErrProcessorClosed
	}
	return nil
}
