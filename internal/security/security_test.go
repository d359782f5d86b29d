package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBufferCopiesAndWipes(t *testing.T) {
	secret := "shared-secret"
	buf := NewKeyBuffer(secret)

	assert.Equal(t, []byte(secret), buf.Bytes())
	assert.Equal(t, len(secret), buf.Len())

	backing := buf.Bytes()
	buf.Destroy()

	assert.Nil(t, buf.Bytes())
	assert.Equal(t, make([]byte, len(secret)), backing, "backing array should be zeroed")
	assert.Equal(t, "shared-secret", secret, "caller string must be untouched")

	// Second destroy is a no-op.
	buf.Destroy()
}

func TestKeyBufferNil(t *testing.T) {
	var buf *KeyBuffer
	assert.NotPanics(t, buf.Destroy)
}

func TestZeroBytes(t *testing.T) {
	data := []byte{1, 2, 3, 0xFF}
	ZeroBytes(data)
	assert.Equal(t, []byte{0, 0, 0, 0}, data)

	assert.NotPanics(t, func() { ZeroBytes(nil) })
}

func TestSecureCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"equal", "abc", "abc", true},
		{"different content", "abc", "abd", false},
		{"different length", "abc", "abcd", false},
		{"both empty", "", "", true},
		{"one empty", "", "a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SecureCompare([]byte(tt.a), []byte(tt.b)))
			assert.Equal(t, tt.want, SecureCompareString(tt.a, tt.b))
		})
	}
}
