package toolexec

import (
	"log/slog"
	"time"
)

const DefaultShutdownTimeout = 10 * time.Second

type options struct {
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

type Option func(*options)

// WithShutdownTimeout bounds the time Invoke waits for Tool.Shutdown.
// Non-positive values are ignored.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithLogger sets the base logger of the run. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func makeOptions(opts ...Option) options {
	o := options{
		shutdownTimeout: DefaultShutdownTimeout,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
