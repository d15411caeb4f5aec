package lang

import "github.com/halmstraw/finance-app-dsl/log"

// options holds parse configuration.
type options struct {
	logger log.Logger
	cache  bool
}

// Option applies a configuration option for parsing.
type Option func(*options)

func makeOptions(opts ...Option) options {
	o := options{cache: true}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger used for parse tracing.
// The zero logger (the default) discards all messages.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCache controls whether parsed documents are memoized by source hash.
// Enabled by default; tests disable it to observe each parse.
func WithCache(enable bool) Option {
	return func(o *options) { o.cache = enable }
}
