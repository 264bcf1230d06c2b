// Package config loads the YAML configuration shared by the command-line
// tools.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	punkt "github.com/jamesainslie/go-punkt"
	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/store"
	"github.com/jamesainslie/go-punkt/store/filesystem"
	"github.com/jamesainslie/go-punkt/store/sqlite"
	"github.com/jamesainslie/go-punkt/trainer"
)

// Config is the file layout. Fields left out of the file keep their
// defaults.
type Config struct {
	LogLevel string   `yaml:"log_level"`
	Training Training `yaml:"training"`
	Store    Store    `yaml:"store"`
}

// Training configures model training.
type Training struct {
	Thresholds              model.Thresholds `yaml:"thresholds"`
	Workers                 int              `yaml:"workers"`
	SeedAbbreviations       []string         `yaml:"seed_abbreviations"`
	InitialsAsAbbreviations bool             `yaml:"initials_as_abbreviations"`
	AllCollocations         bool             `yaml:"all_collocations"`
	AbbrevCollocations      bool             `yaml:"abbrev_collocations"`
}

// Store selects where named models are kept.
type Store struct {
	// Driver is "filesystem" or "sqlite".
	Driver string `yaml:"driver"`
	// Path is a directory for filesystem, a database file for sqlite.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Training: Training{
			Thresholds:              model.DefaultThresholds(),
			SeedAbbreviations:       trainer.DefaultSeedAbbreviations,
			InitialsAsAbbreviations: true,
		},
		Store: Store{
			Driver: "filesystem",
			Path:   "models",
		},
	}
}

// Load reads a configuration file over the defaults. An empty path
// returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the library would otherwise silently accept.
func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	t := c.Training.Thresholds
	if t.AbbrevBackoff < 0 || t.MinAbbrevFrequency < 0 || t.MinCollocFreq < 0 {
		return errors.New("frequency thresholds must not be negative")
	}
	if c.Training.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	switch c.Store.Driver {
	case "filesystem", "sqlite":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}

// Options converts the training section to library options.
func (c Config) Options(logger *slog.Logger) []punkt.Option {
	t := c.Training
	opts := []punkt.Option{
		punkt.WithLogger(logger),
		punkt.WithThresholds(t.Thresholds),
		punkt.WithSeedAbbreviations(t.SeedAbbreviations...),
		punkt.WithInitialsAsAbbreviations(t.InitialsAsAbbreviations),
		punkt.WithCollocationEvidence(t.AllCollocations, t.AbbrevCollocations),
	}
	if t.Workers > 0 {
		opts = append(opts, punkt.WithWorkers(t.Workers))
	}
	return opts
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// OpenStore opens the configured model store. The returned function
// releases it.
func (c Config) OpenStore() (store.Store, func() error, error) {
	switch c.Store.Driver {
	case "sqlite":
		if dir := filepath.Dir(c.Store.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		s, err := sqlite.Open(c.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "filesystem":
		s, err := filesystem.New(c.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", c.Store.Driver)
}
