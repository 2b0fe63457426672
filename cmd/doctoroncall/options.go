package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/mrsinham/doctoroncall/internal/config"
	"github.com/mrsinham/doctoroncall/internal/ledger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// commonFlags are accepted by every command that runs or reads games.
type commonFlags struct {
	configFile string
	seed       uint64
	memory     string
	ledger     string
	noLedger   bool
	logFile    string
	logLevel   string
	logFormat  string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "Load configuration from YAML file")
	fs.Uint64Var(&c.seed, "seed", 0, "Seed for reproducibility (auto-generated if not specified)")
	fs.StringVar(&c.memory, "memory", "", "Saved progress file")
	fs.StringVar(&c.ledger, "ledger", "", "Run history database")
	fs.BoolVar(&c.noLedger, "no-ledger", false, "Do not record the run")
	fs.StringVar(&c.logFile, "log-file", "", "Log file")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&c.logFormat, "log-format", "", "Log format: text, json")
}

// resolve loads the config file and environment, then applies the flags
// that were set on the command line.
func (c *commonFlags) resolve(fs *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return config.Config{}, err
	}
	if fs.Changed("seed") {
		cfg.Seed = c.seed
	}
	if fs.Changed("memory") {
		cfg.MemoryPath = c.memory
	}
	if fs.Changed("ledger") {
		cfg.LedgerPath = c.ledger
	}
	if fs.Changed("log-file") {
		cfg.LogFile = c.logFile
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = c.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveSeed returns the configured seed, or a fresh one when it is 0.
func resolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return seed
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// openLedger opens the run history unless disabled. A ledger that cannot
// be opened is logged and the game goes on without it.
func openLedger(ctx context.Context, cfg config.Config, disabled bool, log logrus.FieldLogger) *ledger.Ledger {
	if disabled || cfg.LedgerPath == "" {
		return nil
	}
	l, err := ledger.Open(ctx, cfg.LedgerPath)
	if err != nil {
		log.WithError(err).Warn("run history disabled")
		return nil
	}
	return l
}
