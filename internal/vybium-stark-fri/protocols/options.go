package protocols

import "go.uber.org/zap"

type options struct {
	logger    *zap.Logger
	metrics   *Metrics
	evaluator Evaluator
}

// Option configures a Prover or Verifier.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records activity into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithEvaluator replaces the CPU NTT used for domain evaluation and
// interpolation.
func WithEvaluator(e Evaluator) Option {
	return func(o *options) {
		if e != nil {
			o.evaluator = e
		}
	}
}

func buildOptions(workers int, opts []Option) *options {
	o := &options{
		logger:    zap.NewNop(),
		evaluator: NTTEvaluator{Workers: workers},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
