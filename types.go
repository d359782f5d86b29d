package jwt

import (
	"encoding/json"
	"maps"
	"math"
	"time"

	"github.com/cybergodev/jwt/internal/signing"
)

const (
	// AlgHS256 is the only signing algorithm. It is written into every header
	// and never read back: verification assumes HS256 unconditionally.
	AlgHS256 = signing.Alg

	// TypeJWT is the header typ value.
	TypeJWT = "JWT"

	// ClaimIssuedAt and ClaimExpiresAt are set by the signer, in milliseconds
	// since the Unix epoch.
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
)

// Header is the fixed token header. Field order fixes the serialized form to
// {"alg":"HS256","typ":"JWT"}.
type Header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

func newHeader() Header {
	return Header{Alg: AlgHS256, Typ: TypeJWT}
}

// Claims is the token payload: arbitrary JSON-representable values keyed by
// name. Verified claims carry numbers as float64.
type Claims map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty map.
func (c Claims) Clone() Claims {
	out := make(Claims, len(c)+2)
	maps.Copy(out, c)
	return out
}

// ExpiresAt returns the exp claim as a time.
func (c Claims) ExpiresAt() (time.Time, bool) {
	return c.millisTime(ClaimExpiresAt)
}

// IssuedAt returns the iat claim as a time.
func (c Claims) IssuedAt() (time.Time, bool) {
	return c.millisTime(ClaimIssuedAt)
}

func (c Claims) millisTime(key string) (time.Time, bool) {
	ms, ok := c.millis(key)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// millis reads a millisecond timestamp claim. The bool is false when the key
// is absent or holds a non-numeric value.
func (c Claims) millis(key string) (int64, bool) {
	raw, exists := c[key]
	if !exists {
		return 0, false
	}
	return toMillis(raw)
}

func toMillis(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(math.Floor(n)), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return toMillis(f)
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	default:
		return 0, false
	}
}
