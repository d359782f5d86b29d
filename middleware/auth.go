// Package middleware authenticates gin requests carrying HS256 bearer tokens.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cybergodev/jwt"
)

// ClaimsKey is the gin context key under which verified claims are stored.
const ClaimsKey = "jwt.claims"

var (
	errMissingToken = errors.New("authorization header is empty")
	errNotBearer    = errors.New("token bearer scheme violated")
)

// TokenVerifier verifies a token with a secret. *jwt.Processor implements it.
type TokenVerifier interface {
	Verify(ctx context.Context, tokenString, secret string) (jwt.Claims, error)
}

// SecretFunc resolves the secret for a request. It is called once per
// request so the middleware itself never holds a secret.
type SecretFunc func(c *gin.Context) (string, error)

// ExtractToken returns the bearer token from the Authorization header.
func ExtractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errMissingToken
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errNotBearer
	}

	return token, nil
}

// Auth rejects requests without a valid bearer token and stores the
// verified claims under ClaimsKey for later handlers.
func Auth(v TokenVerifier, secret SecretFunc, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, err := ExtractToken(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "missing_token", err.Error())
			return
		}

		key, err := secret(c)
		if err != nil {
			logger.Error("resolving token secret", zap.Error(err))
			abort(c, http.StatusInternalServerError, "internal_error", "token secret unavailable")
			return
		}

		claims, err := v.Verify(c.Request.Context(), token, key)
		if err != nil {
			status, code := classify(err)
			if status == http.StatusInternalServerError {
				logger.Error("verifying token", zap.Error(err))
			}
			abort(c, status, code, "invalid token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireClaim lets a request through only when the verified claim name
// equals value. It must run after Auth. value must be comparable; numeric
// claims arrive as float64.
func RequireClaim(name string, value any) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "unauthorized", "no verified claims")
			return
		}

		if claims[name] != value {
			abort(c, http.StatusForbidden, "insufficient_permissions", "claim "+name+" does not match")
			return
		}

		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Auth.
func ClaimsFrom(c *gin.Context) (jwt.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(jwt.Claims)
	return claims, ok
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return http.StatusUnauthorized, "token_expired"
	case errors.Is(err, jwt.ErrTokenRevoked):
		return http.StatusUnauthorized, "token_revoked"
	case errors.Is(err, jwt.ErrMalformedToken),
		errors.Is(err, jwt.ErrInvalidSignature):
		return http.StatusUnauthorized, "invalid_token"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":   code,
		"message": message,
	})
}
