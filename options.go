package punkt

import (
	"log/slog"
	"runtime"

	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/trainer"
)

// Option configures a Segmenter or a training run.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	thresholds model.Thresholds
	workers    int
	seeds      []string
	initials   bool
	allColloc  bool
	abbrColloc bool
	progress   func(pass, done int)
}

func defaultConfig() config {
	return config{
		logger:     slog.Default(),
		thresholds: model.DefaultThresholds(),
		workers:    runtime.NumCPU(),
		seeds:      trainer.DefaultSeedAbbreviations,
		initials:   true,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c config) trainerConfig() trainer.Config {
	return trainer.Config{
		Thresholds:              c.thresholds,
		InitialsAsAbbreviations: c.initials,
		SeedAbbreviations:       c.seeds,
		IncludeAllCollocs:       c.allColloc,
		IncludeAbbrevCollocs:    c.abbrColloc,
		Workers:                 c.workers,
		Progress:                c.progress,
		Logger:                  c.logger,
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithThresholds sets the training thresholds (default: model.DefaultThresholds()).
func WithThresholds(t model.Thresholds) Option {
	return func(c *config) {
		c.thresholds = t
	}
}

// WithWorkers sets how many documents are trained on concurrently
// (default: runtime.NumCPU()).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSeedAbbreviations replaces the abbreviations that are always learned
// (default: trainer.DefaultSeedAbbreviations). Call with no arguments to
// learn from statistics alone.
func WithSeedAbbreviations(seeds ...string) Option {
	return func(c *config) {
		c.seeds = seeds
	}
}

// WithInitialsAsAbbreviations controls whether single letters followed by
// a period are always abbreviations (default: true).
func WithInitialsAsAbbreviations(on bool) Option {
	return func(c *config) {
		c.initials = on
	}
}

// WithCollocationEvidence widens the pairs considered as collocations:
// all pairs after any period-final token, or pairs after abbreviations.
// By default only pairs after numbers and initials are considered.
func WithCollocationEvidence(all, afterAbbreviations bool) Option {
	return func(c *config) {
		c.allColloc = all
		c.abbrColloc = afterAbbreviations
	}
}

// WithProgress sets a callback invoked after each document of each
// training pass. It may be called concurrently.
func WithProgress(fn func(pass, done int)) Option {
	return func(c *config) {
		c.progress = fn
	}
}
