package jwt

import (
	"go.uber.org/zap"
)

type options struct {
	clock  Clock
	logger *zap.Logger
}

// Option configures a Signer, Verifier or Processor.
type Option func(*options)

// WithClock replaces the host clock.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the logger used for debug events. Secrets, tokens and
// claim values are never logged.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		clock:  SystemClock,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
