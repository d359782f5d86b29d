package core

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EncodeSegment serializes v as JSON and encodes it as unpadded base64url.
// HTML escaping is disabled so that characters such as '&' and '<' are
// emitted verbatim, matching what most non-Go encoders produce.
func EncodeSegment(v any) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}

	// Encoder.Encode terminates every value with a newline.
	raw := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeSegment decodes an unpadded base64url segment and unmarshals the
// JSON it contains into dest.
func DecodeSegment(segment string, dest any) error {
	if len(segment) == 0 {
		return fmt.Errorf("empty segment")
	}

	buf := make([]byte, base64.RawURLEncoding.DecodedLen(len(segment)))

	n, err := base64.RawURLEncoding.Decode(buf, []byte(segment))
	if err != nil {
		return fmt.Errorf("failed to decode base64url: %w", err)
	}

	if err := json.Unmarshal(buf[:n], dest); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}
