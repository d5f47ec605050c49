package adjbound

import (
	"log/slog"

	"github.com/fealab/adjbound/resource"
)

type options struct {
	numVar           int
	timeDomain       bool
	boundaryCoupling bool
	logger           *Logger
	controller       *resource.Controller
}

// Option configures BoundState construction.
type Option func(*options)

// WithNumVar sets the number of adjoint variables per node.
// Defaults to the spatial dimension count (pure mechanical problems).
func WithNumVar(numVar int) Option {
	return func(o *options) {
		o.numVar = numVar
	}
}

// WithTimeDomain allocates velocity and acceleration adjoints in addition to
// the displacement adjoint. Steady runs skip both arrays entirely.
func WithTimeDomain() Option {
	return func(o *options) {
		o.timeDomain = true
	}
}

// WithBoundaryCoupling enables the boundary-only sensitivity and source-term
// matrices. Without this option AllocateBoundaryVariables leaves the store
// empty (zero rows), so runs that do not exchange data with a partner solver
// pay nothing for the feature.
func WithBoundaryCoupling() Option {
	return func(o *options) {
		o.boundaryCoupling = true
	}
}

// WithLogger configures structured logging for lifecycle events.
// Pass nil to disable logging. Accessors never log.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController tracks (and optionally budget-limits) the memory
// held by the dense and boundary matrices. Pass nil to disable tracking.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

func applyOptions(numDim int, optFns []Option) options {
	o := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.numVar <= 0 {
		o.numVar = numDim
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
