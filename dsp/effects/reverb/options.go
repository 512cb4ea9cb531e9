package reverb

import "log/slog"

// Option configures a Processor at construction.
type Option func(*Processor)

// WithCombStrategy selects the comb implementation. Unknown strategies
// fall back to CombBasic.
func WithCombStrategy(s CombStrategy) Option {
	return func(p *Processor) {
		if s != CombStereoSpread {
			s = CombBasic
		}

		p.strategy = s
	}
}

// WithParameters sets the initial control values (clamped).
func WithParameters(params Parameters) Option {
	return func(p *Processor) {
		p.params = params.Clamped()
	}
}

// WithLogger sets the logger for control-path events. The audio path
// never logs.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}
