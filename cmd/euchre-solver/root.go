package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/behrlich/euchre-solver/pkg/config"
	"github.com/behrlich/euchre-solver/pkg/telemetry"
)

// rootFlags holds the persistent, config.Config-shaped CLI flags. Bound
// directly on the root command's pflag.FlagSet rather than globals
// scattered across subcommand files, then resolved into a config.Config
// once in PersistentPreRunE.
type rootFlags struct {
	configFile string
	logLevel   string

	normalizeSuit    bool
	linearCFR        bool
	singleThread     bool
	cacheEnabled     bool
	isoTransposition bool
	maxTTDepth       int
	maxSearchDepth   int
	workers          int
}

// fileConfig mirrors config.Config for YAML unmarshaling via viper.
// Pointer fields distinguish "absent from file" (nil, defaults to
// config.Default()'s value) from an explicit false/0, so a config file
// only needs to name the fields it wants to override.
type fileConfig struct {
	NormalizeSuit    *bool `mapstructure:"normalize_suit"`
	LinearCFR        *bool `mapstructure:"linear_cfr"`
	SingleThread     *bool `mapstructure:"single_thread"`
	CacheEnabled     *bool `mapstructure:"cache_enabled"`
	IsoTransposition *bool `mapstructure:"iso_transposition"`
	MaxTTDepth       *int  `mapstructure:"max_tt_depth"`
	MaxSearchDepth   *int  `mapstructure:"max_search_depth"`
	Workers          *int  `mapstructure:"workers"`
}

// cliContext is threaded to every subcommand's RunE via a closure over
// newRootCmd's locals, rather than package-level globals, so tests
// (none run here, per the standing no-toolchain constraint, but kept
// idiomatic regardless) could construct more than one in isolation.
type cliContext struct {
	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	var rf rootFlags
	var ctx cliContext

	root := &cobra.Command{
		Use:           "euchre-solver",
		Short:         "Train and evaluate imperfect-information search agents for Euchre and Kuhn Poker",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, rf)
			if err != nil {
				return err
			}
			ctx.cfg = cfg
			ctx.log = telemetry.NewConsole(rf.logLevel)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rf.configFile, "config", "", "path to a YAML config file overriding defaults (flags still win)")
	pf.StringVar(&rf.logLevel, "log-level", "info", "zerolog level: debug, info, warn, error")

	def := config.Default()
	pf.BoolVar(&rf.normalizeSuit, "normalize-suit", def.NormalizeSuit, "canonicalize Euchre info-state keys by face-up suit")
	pf.BoolVar(&rf.linearCFR, "linear-cfr", def.LinearCFR, "weight CFR strategy-sum contributions by iteration number")
	pf.BoolVar(&rf.singleThread, "single-thread", def.SingleThread, "run PIMCTS world evaluation sequentially")
	pf.BoolVar(&rf.cacheEnabled, "cache-enabled", def.CacheEnabled, "enable the alpha-beta transposition table")
	pf.BoolVar(&rf.isoTransposition, "iso-transposition", def.IsoTransposition, "canonicalize transposition keys through the isomorphism fingerprint")
	pf.IntVar(&rf.maxTTDepth, "max-tt-depth", def.MaxTTDepth, "deepest search depth stored in the transposition table")
	pf.IntVar(&rf.maxSearchDepth, "max-search-depth", def.MaxSearchDepth, "iterative-deepening ceiling for the alpha-beta/MTD(f) solver")
	pf.IntVar(&rf.workers, "workers", def.Workers, "bound on concurrent PIMCTS per-world solver goroutines")

	root.AddCommand(
		newTrainCmd(&ctx),
		newEvaluateCmd(&ctx),
		newSizeCmd(),
		newExploitabilityCmd(&ctx),
	)
	return root
}

// resolveConfig layers config.Default() under an optional YAML file
// under the persistent flags, in that precedence order (flags always
// win, matching SPEC_FULL.md §4.0's "flags/env/file" ordering).
func resolveConfig(cmd *cobra.Command, rf rootFlags) (config.Config, error) {
	cfg := config.Default()

	if rf.configFile != "" {
		vp := viper.New()
		vp.SetConfigFile(rf.configFile)
		if err := vp.ReadInConfig(); err != nil {
			return config.Config{}, errors.Wrapf(err, "euchre-solver: reading config file %s", rf.configFile)
		}
		var fc fileConfig
		if err := vp.Unmarshal(&fc); err != nil {
			return config.Config{}, errors.Wrap(err, "euchre-solver: parsing config file")
		}
		applyFileConfig(&cfg, fc)
	}

	flags := cmd.Flags()
	if flags.Changed("normalize-suit") {
		cfg.NormalizeSuit = rf.normalizeSuit
	}
	if flags.Changed("linear-cfr") {
		cfg.LinearCFR = rf.linearCFR
	}
	if flags.Changed("single-thread") {
		cfg.SingleThread = rf.singleThread
	}
	if flags.Changed("cache-enabled") {
		cfg.CacheEnabled = rf.cacheEnabled
	}
	if flags.Changed("iso-transposition") {
		cfg.IsoTransposition = rf.isoTransposition
	}
	if flags.Changed("max-tt-depth") {
		cfg.MaxTTDepth = rf.maxTTDepth
	}
	if flags.Changed("max-search-depth") {
		cfg.MaxSearchDepth = rf.maxSearchDepth
	}
	if flags.Changed("workers") {
		cfg.Workers = rf.workers
	}
	return cfg, nil
}

func applyFileConfig(cfg *config.Config, fc fileConfig) {
	if fc.NormalizeSuit != nil {
		cfg.NormalizeSuit = *fc.NormalizeSuit
	}
	if fc.LinearCFR != nil {
		cfg.LinearCFR = *fc.LinearCFR
	}
	if fc.SingleThread != nil {
		cfg.SingleThread = *fc.SingleThread
	}
	if fc.CacheEnabled != nil {
		cfg.CacheEnabled = *fc.CacheEnabled
	}
	if fc.IsoTransposition != nil {
		cfg.IsoTransposition = *fc.IsoTransposition
	}
	if fc.MaxTTDepth != nil {
		cfg.MaxTTDepth = *fc.MaxTTDepth
	}
	if fc.MaxSearchDepth != nil {
		cfg.MaxSearchDepth = *fc.MaxSearchDepth
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
}
