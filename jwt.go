// Package jwt mints and verifies compact HS256 tokens of the form
//
//	base64url(header) "." base64url(claims) "." base64url(HMAC-SHA256)
//
// using unpadded base64url throughout. The signer injects iat and exp as
// milliseconds since the Unix epoch; the verifier authenticates the token
// before decoding anything and rejects it once exp is in the past.
//
// Only HMAC-SHA256 is supported and the header's alg field is never
// consulted, which rules out algorithm-confusion attacks by construction.
//
// Secrets are passed per call and are never retained, logged or cached.
package jwt

import (
	"github.com/cybergodev/jwt/internal/signing"
)

var (
	defaultSigner   = NewSigner()
	defaultVerifier = NewVerifier()
)

// Sign mints a token for claims expiring at expiresAt (milliseconds since
// the epoch) using the host clock. See Signer.Sign.
func Sign(claims Claims, expiresAt int64, secret string) (string, error) {
	return defaultSigner.Sign(claims, expiresAt, secret)
}

// Verify authenticates tokenString using the host clock and returns its
// claims. See Verifier.VerifyContext.
func Verify(tokenString, secret string) (Claims, error) {
	return defaultVerifier.Verify(tokenString, secret)
}

// ComputeSignature returns the signature segment for already-encoded header
// and payload segments. It performs no validation of its inputs.
func ComputeSignature(secret, headerSegment, payloadSegment string) string {
	return signing.ComputeSignature(secret, headerSegment, payloadSegment)
}
