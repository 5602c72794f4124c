// ABOUTME: Functional options for the collector
// ABOUTME: Configures logging and capacity checking

package gc

type options struct {
	logger         *Logger
	strictCapacity bool
}

func defaultOptions() options {
	return options{
		logger: NoopLogger(),
	}
}

// Option configures a Collector.
type Option func(*options)

// WithLogger configures the logger used for phase diagnostics.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithStrictCapacity makes partitioning fail with a *CapacityError when an
// object's charges push a region past its capacity.
//
// By default over-subscription is tolerated and only logged as a warning.
func WithStrictCapacity(strict bool) Option {
	return func(o *options) {
		o.strictCapacity = strict
	}
}
