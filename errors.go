package jwt

import (
	"errors"
	"fmt"
)

// Token errors. Every failure returned by Sign and Verify matches exactly one
// of these with errors.Is.
var (
	ErrMissingSecret    = errors.New("missing secret: a non-empty secret is required")
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid claims: not JSON-serializable")
	ErrTokenRevoked     = errors.New("token has been revoked")
)

// Processor errors.
var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrProcessorClosed = errors.New("processor is closed: cannot perform operations")
)

// SegmentError reports a token segment that authenticated correctly but could
// not be decoded. It matches ErrMalformedToken.
type SegmentError struct {
	Segment string // "payload" or a claim name
	Message string
	Err     error
}

func (e *SegmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed token %s: %s: %v", e.Segment, e.Message, e.Err)
	}
	return fmt.Sprintf("malformed token %s: %s", e.Segment, e.Message)
}

func (e *SegmentError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedToken, e.Err}
	}
	return []error{ErrMalformedToken}
}
