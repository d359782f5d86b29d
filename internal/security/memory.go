package security

import (
	"crypto/subtle"
	"runtime"
)

// KeyBuffer holds a private copy of an HMAC secret for the duration of one
// operation. The caller's string is never retained; Destroy wipes the copy.
type KeyBuffer struct {
	data []byte
}

// NewKeyBuffer copies secret into a freshly allocated buffer.
func NewKeyBuffer(secret string) *KeyBuffer {
	data := make([]byte, len(secret))
	copy(data, secret)
	return &KeyBuffer{data: data}
}

// Bytes returns the buffered key. The slice is invalid after Destroy.
func (k *KeyBuffer) Bytes() []byte {
	return k.data
}

// Len reports the key length in bytes.
func (k *KeyBuffer) Len() int {
	return len(k.data)
}

// Destroy zeroes the buffer and drops the reference.
func (k *KeyBuffer) Destroy() {
	if k == nil || k.data == nil {
		return
	}
	ZeroBytes(k.data)
	k.data = nil
}

// ZeroBytes overwrites data in place.
func ZeroBytes(data []byte) {
	if len(data) == 0 {
		return
	}

	for i := range data {
		data[i] = 0
	}

	runtime.KeepAlive(data)
}

// SecureCompare reports whether a and b are equal without leaking, through
// timing, the position of the first differing byte.
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// SecureCompareString is SecureCompare over string contents.
func SecureCompareString(a, b string) bool {
	return SecureCompare([]byte(a), []byte(b))
}
