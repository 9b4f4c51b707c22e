package mdarray

type opConfig struct {
	concurrent int
}

// OpOption configures a single tensor operation.
type OpOption func(cfg *opConfig)

// WithConcurrency splits the operation across up to concurrent goroutines.
// Values below 2 keep the operation on the calling goroutine.
func WithConcurrency(concurrent int) OpOption {
	return func(cfg *opConfig) {
		cfg.concurrent = concurrent
	}
}

func newOpConfig(opts []OpOption) opConfig {
	cfg := opConfig{concurrent: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.concurrent < 1 {
		cfg.concurrent = 1
	}

	return cfg
}
