// Package telemetry wraps github.com/rs/zerolog with the leveling
// convention the solver, PIMCTS, and the CFR trainer share: Debug for
// per-depth search bounds, Info for completed training checkpoints, and
// Warn for cache-contention and misuse events. Every component accepts
// a zerolog.Logger directly rather than this package's types, so
// Nop stays the universal nil-safe default (zerolog.Logger's zero value
// already discards everything, matching the "optional logger" contract
// in SPEC_FULL.md §4.0 without this package needing its own sentinel).
package telemetry

import (
	"os"

	"github.com/rs/zerolog"
)

// NewConsole returns a human-readable, leveled logger for interactive
// CLI use. level is parsed with zerolog.ParseLevel; an unrecognized
// level falls back to zerolog.InfoLevel.
func NewConsole(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

// TrainingCheckpoint logs one CFR training checkpoint at Info level.
func TrainingCheckpoint(log zerolog.Logger, iteration int, nashConv, elapsedSeconds float64) {
	log.Info().
		Int("iteration", iteration).
		Float64("nash_conv", nashConv).
		Float64("elapsed_seconds", elapsedSeconds).
		Msg("training checkpoint")
}

// SearchBound logs one iterative-deepening depth's alpha-beta bound at
// Debug level; cheap to call unconditionally since zerolog skips the
// field formatting work when the level is disabled.
func SearchBound(log zerolog.Logger, depth int, value float64) {
	log.Debug().
		Int("depth", depth).
		Float64("value", value).
		Msg("search bound")
}

// CacheMisuse logs a transposition probe rejected for a non-turn-start
// state, the CacheMisuse condition named in SPEC_FULL.md §7. It is not
// fatal — the caller falls through to a full evaluation — but a high
// rate indicates a caller is probing at the wrong granularity.
func CacheMisuse(log zerolog.Logger, phase string) {
	log.Warn().Str("phase", phase).Msg("transposition probe at non-turn-start state")
}

// ShardContention logs a blocking wait for a transposition-table shard
// lock held by a concurrent writer.
func ShardContention(log zerolog.Logger, shard int) {
	log.Warn().Int("shard", shard).Msg("transposition table shard contention")
}
