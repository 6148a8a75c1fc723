// Package config defines the solver and trainer's immutable
// configuration, built once at CLI startup and passed by value into
// every constructor. There is no global mutable flag state anywhere in
// this module; a component that needs a feature flag takes a
// config.Config (or a single field of one) as a constructor argument.
package config

// Config holds every feature flag and resource bound the solver, the
// CFR trainer, and PIMCTS read at construction time.
type Config struct {
	// NormalizeSuit passes every info-state key and action through the
	// Euchre suit-normalizer so strategically equivalent deals share one
	// CFR node.
	NormalizeSuit bool

	// LinearCFR weights each training iteration's strategy contribution
	// by the iteration number instead of 1, accelerating convergence on
	// small games.
	LinearCFR bool

	// SingleThread disables PIMCTS's per-world worker pool, running all
	// world evaluations sequentially on the calling goroutine. Useful
	// for deterministic tests and profiling.
	SingleThread bool

	// CacheEnabled turns the alpha-beta transposition table on or off.
	CacheEnabled bool

	// IsoTransposition additionally canonicalizes transposition keys
	// through the isomorphism fingerprint, sharing cache entries across
	// suit-equivalent decks. Has no effect if CacheEnabled is false.
	IsoTransposition bool

	// MaxTTDepth bounds how deep into the search tree transposition
	// entries are stored; shallow, frequently-revisited nodes benefit
	// most, and bounding the depth keeps the table's memory footprint
	// predictable.
	MaxTTDepth int

	// MaxSearchDepth is the iterative-deepening ceiling for the
	// alpha-beta/MTD(f) solver.
	MaxSearchDepth int

	// Workers bounds PIMCTS's concurrent per-world solver goroutines.
	Workers int
}

// Default returns the configuration the CLI falls back to when neither
// flags nor a config file set a value.
func Default() Config {
	return Config{
		NormalizeSuit:    true,
		LinearCFR:        false,
		SingleThread:     false,
		CacheEnabled:     true,
		IsoTransposition: true,
		MaxTTDepth:       20,
		MaxSearchDepth:   6,
		Workers:          4,
	}
}
