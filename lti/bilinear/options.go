package bilinear

// Option configures [Transform].
type Option func(*config)

type config struct {
	prewarp float64
}

// WithPrewarp matches the discrete and continuous responses exactly at the
// angular frequency w (rad/s) instead of only at DC. w must lie in
// (0, pi/T). A zero w disables pre-warping.
func WithPrewarp(w float64) Option {
	return func(cfg *config) {
		cfg.prewarp = w
	}
}

func applyOptions(opts ...Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
