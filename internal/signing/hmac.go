package signing

import (
	"crypto"
	"crypto/hmac"
	_ "crypto/sha256"
	"encoding/base64"

	"github.com/cybergodev/jwt/internal/security"
)

// Alg is the only algorithm this package produces or accepts.
const Alg = "HS256"

type hmacSHA256 struct {
	hashFunc crypto.Hash
}

var hs256 = &hmacSHA256{hashFunc: crypto.SHA256}

// sum returns the raw MAC of signingInput under secret.
func (h *hmacSHA256) sum(signingInput, secret string) []byte {
	key := security.NewKeyBuffer(secret)
	defer key.Destroy()

	mac := hmac.New(h.hashFunc.New, key.Bytes())
	mac.Write([]byte(signingInput))
	return mac.Sum(nil)
}

// sign returns the base64url (unpadded) MAC of signingInput.
func (h *hmacSHA256) sign(signingInput, secret string) string {
	sig := h.sum(signingInput, secret)
	defer security.ZeroBytes(sig)

	return base64.RawURLEncoding.EncodeToString(sig)
}

// verify recomputes the signature and compares the encoded text in constant
// time. The received segment is never decoded, so any textual change to it
// is a mismatch.
func (h *hmacSHA256) verify(signingInput, signature, secret string) bool {
	expected := h.sign(signingInput, secret)
	return security.SecureCompareString(expected, signature)
}
