package hybrid

// Option configures a filtering call.
// Use functional options to customize how the work is executed; options never
// change the numeric result.
//
// Example:
//
//	// Sequential (default)
//	out, err := hybrid.Correlate(img, k)
//
//	// Split output rows across 8 workers
//	out, err := hybrid.Correlate(img, k, hybrid.WithWorkers(8))
type Option func(*options)

// options holds optional configuration for a filtering call.
type options struct {
	workers int
}

// defaultOptions returns the default options: sequential execution.
func defaultOptions() options {
	return options{workers: 1}
}

// applyOptions folds opts over the defaults.
func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithWorkers splits the correlation output rows into bands processed by n
// goroutines. Each output sample is computed by exactly one worker with the
// same summation order as the sequential loop, so results are identical.
// Values of n <= 1 run on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}
