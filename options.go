package watrix

import (
	"io"
	"log/slog"
)

type options struct {
	logger   *slog.Logger
	capacity int
}

// Option configures matrix construction.
type Option func(*options)

// WithLogger sets the logger that receives construction events.
// If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = discardLogger
		}
		o.logger = l
	}
}

// WithCapacity preallocates room for n values in a Builder.
// Only NewBuilder uses it; New and NewFromUint32 size from their input.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newOptions(opts []Option) options {
	o := options{logger: discardLogger}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
