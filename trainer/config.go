package trainer

import (
	"log/slog"

	"github.com/jamesainslie/go-punkt/model"
)

// DefaultSeedAbbreviations are treated as abbreviations regardless of
// their corpus statistics.
var DefaultSeedAbbreviations = []string{
	"dr", "mr", "mrs", "ms", "prof", "jr", "sr", "vs", "etc", "e.g", "i.e",
}

// Config controls training.
type Config struct {
	Thresholds model.Thresholds

	// InitialsAsAbbreviations classifies every single letter seen with a
	// period as an abbreviation.
	InitialsAsAbbreviations bool
	// SeedAbbreviations are always abbreviations. A trailing period is
	// ignored.
	SeedAbbreviations []string

	// IncludeAllCollocs counts every pair after a period-final token as
	// collocation evidence, not only pairs after numbers and initials.
	IncludeAllCollocs bool
	// IncludeAbbrevCollocs counts pairs after abbreviations as collocation
	// evidence.
	IncludeAbbrevCollocs bool

	// Workers is the number of documents processed concurrently.
	Workers int
	// Progress, if set, is called after each document of each pass. It may
	// be called from several goroutines.
	Progress func(pass, done int)
	Logger   *slog.Logger
}

// DefaultConfig returns the published defaults with one worker.
func DefaultConfig() Config {
	return Config{
		Thresholds:              model.DefaultThresholds(),
		InitialsAsAbbreviations: true,
		SeedAbbreviations:       DefaultSeedAbbreviations,
		Workers:                 1,
		Logger:                  slog.Default(),
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c Config) workers() int {
	return max(c.Workers, 1)
}
