package core

const (
	// Separator delimits token segments.
	Separator = '.'

	// SegmentCount is the exact number of segments in a well-formed token.
	SegmentCount = 3
)

// Core is a token split into its three still-encoded segments.
type Core struct {
	Header    string
	Payload   string
	Signature string
	Raw       string
}

