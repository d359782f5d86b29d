package signing

// SigningInput joins the encoded header and payload segments with a dot.
// The segments are treated as opaque text.
func SigningInput(headerSegment, payloadSegment string) string {
	buf := make([]byte, len(headerSegment)+1+len(payloadSegment))

	n := copy(buf, headerSegment)
	buf[n] = '.'
	copy(buf[n+1:], payloadSegment)

	return string(buf)
}

// ComputeSignature returns the HMAC-SHA256 signature segment for the given
// encoded header and payload. It is a pure function of its inputs.
func ComputeSignature(secret, headerSegment, payloadSegment string) string {
	return hs256.sign(SigningInput(headerSegment, payloadSegment), secret)
}

// Verify reports whether signatureSegment is the signature of the given
// header and payload segments under secret.
func Verify(secret, headerSegment, payloadSegment, signatureSegment string) bool {
	return hs256.verify(SigningInput(headerSegment, payloadSegment), signatureSegment, secret)
}

// SignedString appends the signature of signingInput, producing the final
// three-segment token.
func SignedString(signingInput, secret string) string {
	signature := hs256.sign(signingInput, secret)

	tokenBuf := make([]byte, len(signingInput)+1+len(signature))

	n := copy(tokenBuf, signingInput)
	tokenBuf[n] = '.'
	copy(tokenBuf[n+1:], signature)

	return string(tokenBuf)
}
