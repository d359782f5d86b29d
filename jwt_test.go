package jwt

import (
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "Kx9#mP2$vL8@nQ5!wR7&tY3^uI6*oE4%aS1+dF0-gH9~jK2#bN5$cM8@xZ7&vB4!"

// testNow is 2021-01-01T00:00:00Z in milliseconds.
const testNow int64 = 1609459200000

// rawToken assembles a token from literal header and payload JSON, signed
// with secret.
func rawToken(header, payload, secret string) string {
	h := base64.RawURLEncoding.EncodeToString([]byte(header))
	p := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return h + "." + p + "." + ComputeSignature(secret, h, p)
}

// ============================================================================
// ROUND TRIP
// ============================================================================

func TestSignVerifyRoundTrip(t *testing.T) {
	exp := time.Now().Add(time.Hour).UnixMilli()

	tests := []struct {
		name   string
		claims Claims
	}{
		{"user claims", Claims{"usr": "x", "role": "admin"}},
		{"empty claims", Claims{}},
		{"nil claims", nil},
		{"nested values", Claims{"perms": []any{"read", "write"}, "meta": map[string]any{"dept": "eng"}}},
		{"null value", Claims{"usr": nil}},
		{"unicode", Claims{"name": "Zoë 日本"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := Sign(tt.claims, exp, testSecret)
			require.NoError(t, err)
			assert.Equal(t, 2, strings.Count(token, "."))
			assert.NotContains(t, token, "=")

			got, err := Verify(token, testSecret)
			require.NoError(t, err)

			for k, v := range tt.claims {
				assert.Equal(t, v, got[k], "claim %q", k)
			}
			assert.Equal(t, float64(exp), got[ClaimExpiresAt])
			assert.Contains(t, got, ClaimIssuedAt)
			assert.Len(t, got, len(tt.claims)+2)
		})
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := Sign(Claims{"usr": "x"}, time.Now().Add(time.Hour).UnixMilli(), "secret-a")
	require.NoError(t, err)

	_, err = Verify(token, "secret-b")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyTampered(t *testing.T) {
	token, err := Sign(Claims{"usr": "x"}, time.Now().Add(time.Hour).UnixMilli(), testSecret)
	require.NoError(t, err)
	parts := strings.Split(token, ".")

	flip := func(s string) string {
		b := []byte(s)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"exp":99999999999999,"iat":0,"usr":"admin"}`))

	tests := []struct {
		name  string
		token string
	}{
		{"header altered", flip(parts[0]) + "." + parts[1] + "." + parts[2]},
		{"payload altered", parts[0] + "." + flip(parts[1]) + "." + parts[2]},
		{"payload replaced", parts[0] + "." + forged + "." + parts[2]},
		{"signature altered", parts[0] + "." + parts[1] + "." + flip(parts[2])},
		{"signature truncated", parts[0] + "." + parts[1] + "." + parts[2][:10]},
		{"signature empty", parts[0] + "." + parts[1] + "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.token, testSecret)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestVerifyMalformed(t *testing.T) {
	token, err := Sign(Claims{"usr": "x"}, time.Now().Add(time.Hour).UnixMilli(), testSecret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no separators", "abc"},
		{"two segments", "a.b"},
		{"four segments", token + ".extra"},
		{"only separators", "...."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.token, testSecret)
			assert.ErrorIs(t, err, ErrMalformedToken)
			assert.False(t, errors.Is(err, ErrInvalidSignature))
		})
	}
}

func TestMissingSecret(t *testing.T) {
	_, err := Sign(Claims{"usr": "x"}, time.Now().Add(time.Hour).UnixMilli(), "")
	assert.ErrorIs(t, err, ErrMissingSecret)

	// The secret is checked before the token is even split.
	_, err = Verify("not-a-token", "")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestComputeSignatureVector(t *testing.T) {
	sig := ComputeSignature("secret",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9",
		"eyJzdWIiOiIxMjM0NTY3ODkwIiwibmFtZSI6IkpvaG4gRG9lIiwiaWF0IjoxNTE2MjM5MDIyfQ",
	)
	assert.Equal(t, "XbPfbIHMI6arZ3Y922BhjWgQzWXcXNrz0ogtVhfEd2o", sig)
	assert.Len(t, sig, 43)
}

func TestComputeSignatureDeterministic(t *testing.T) {
	a := ComputeSignature(testSecret, "h", "p")
	b := ComputeSignature(testSecret, "h", "p")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, ComputeSignature(testSecret+"x", "h", "p"))
}

// ============================================================================
// CONCURRENCY
// ============================================================================

func TestConcurrentSignVerify(t *testing.T) {
	const workers = 16
	const perWorker = 50

	exp := time.Now().Add(time.Hour).UnixMilli()
	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				token, err := Sign(Claims{"w": w, "i": i}, exp, testSecret)
				if err != nil {
					errs <- err
					continue
				}
				claims, err := Verify(token, testSecret)
				if err != nil {
					errs <- err
					continue
				}
				if claims["w"] != float64(w) || claims["i"] != float64(i) {
					errs <- errors.New("claims mismatch")
				}
			}
		}(w)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
