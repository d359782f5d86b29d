package core

import (
	"fmt"

	"github.com/cybergodev/jwt/internal/signing"
)

var errInvalidTokenFormat = fmt.Errorf("token must have exactly %d segments", SegmentCount)

// split3 cuts s at the first two separators. It fails unless s contains
// exactly two separators.
func split3(s string, sep byte) (string, string, string, bool) {
	first := -1
	second := -1

	for i := 0; i < len(s); i++ {
		if s[i] != sep {
			continue
		}
		switch {
		case first == -1:
			first = i
		case second == -1:
			second = i
		default:
			return "", "", "", false
		}
	}

	if second == -1 {
		return "", "", "", false
	}

	return s[:first], s[first+1 : second], s[second+1:], true
}

// Split breaks a token into its segments without decoding anything.
func Split(tokenString string) (*Core, error) {
	header, payload, signature, ok := split3(tokenString, Separator)
	if !ok {
		return nil, errInvalidTokenFormat
	}

	return &Core{
		Header:    header,
		Payload:   payload,
		Signature: signature,
		Raw:       tokenString,
	}, nil
}

// Verify reports whether the token's signature matches its header and
// payload under secret.
func (c *Core) Verify(secret string) bool {
	return signing.Verify(secret, c.Header, c.Payload, c.Signature)
}

// DecodeClaims unmarshals the payload segment into dest.
func (c *Core) DecodeClaims(dest any) error {
	return DecodeSegment(c.Payload, dest)
}

// SignedString encodes header and claims and signs them with secret.
func SignedString(header, claims any, secret string) (string, error) {
	headerSegment, err := EncodeSegment(header)
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	payloadSegment, err := EncodeSegment(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	return signing.SignedString(signing.SigningInput(headerSegment, payloadSegment), secret), nil
}
