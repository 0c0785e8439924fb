package epigo

import (
	"log/slog"

	"github.com/hupe1980/epigo/sampler"
	"github.com/hupe1980/epigo/solver"
)

const (
	// DefaultThreshold is the inlier threshold in pixels.
	DefaultThreshold = 1.5

	// DefaultConfidence is the probability that at least one all-inlier
	// sample is drawn before the loop stops.
	DefaultConfidence = 0.99

	// DefaultMaxIterations caps the sampling loop.
	DefaultMaxIterations = 5000

	// DefaultMinIterations is the floor below which adaptive termination
	// never cuts the loop.
	DefaultMinIterations = 100
)

const (
	minConfidence = 0.5
	maxConfidence = 0.9999999
)

type options struct {
	threshold        float64
	confidence       float64
	maxIterations    int
	minIterations    int
	seed             int64
	seedSet          bool
	sampler          sampler.Sampler
	workers          int
	refit            solver.Nonminimal
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Estimator.
type Option func(*options)

// WithThreshold sets the inlier threshold in the distance units of the
// residual function (pixels for the built-in residuals). Residuals are
// squared, so the threshold is squared internally before comparison.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithConfidence sets the probability that at least one uncontaminated
// sample is drawn, which drives adaptive termination. Values are clamped
// to [0.5, 0.9999999].
func WithConfidence(confidence float64) Option {
	return func(o *options) {
		o.confidence = confidence
	}
}

// WithMaxIterations caps the number of sampling iterations regardless of
// the adaptive bound.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithMinIterations keeps the loop running for at least n iterations even
// when the adaptive bound is already satisfied.
func WithMinIterations(n int) Option {
	return func(o *options) {
		o.minIterations = n
	}
}

// WithRandomSeed seeds the default uniform sampler so runs are
// reproducible. Without it, the sampler is seeded from the clock.
func WithRandomSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithSampler replaces the default uniform sampler. It takes precedence
// over WithRandomSeed.
func WithSampler(s sampler.Sampler) Option {
	return func(o *options) {
		o.sampler = s
	}
}

// WithWorkers sets the number of goroutines evaluating hypotheses.
// Values below 2 keep the loop serial. Results are deterministic for a
// fixed seed and worker count, but may differ between worker counts
// because iteration limits apply at batch granularity.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRefitSolver sets the least-squares solver used to polish the winning
// model on its consensus set. Pass nil to disable refitting.
func WithRefitSolver(s solver.Nonminimal) Option {
	return func(o *options) {
		o.refit = s
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// estimation runs. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &epigo.BasicMetricsCollector{}
//	est, _ := epigo.Fundamental(epigo.WithMetricsCollector(metrics))
//	// ... run estimations ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg latency: %dns\n", stats.EstimateCount, stats.EstimateAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for estimation runs.
//
// Example with JSON logging:
//
//	logger := epigo.NewJSONLogger(slog.LevelInfo)
//	est, _ := epigo.Fundamental(epigo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
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

func applyOptions(optFns []Option) options {
	o := options{
		threshold:        DefaultThreshold,
		confidence:       DefaultConfidence,
		maxIterations:    DefaultMaxIterations,
		minIterations:    DefaultMinIterations,
		workers:          1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
