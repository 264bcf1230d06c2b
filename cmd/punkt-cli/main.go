package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	punkt "github.com/jamesainslie/go-punkt"
	"github.com/jamesainslie/go-punkt/internal/config"
)

// Set at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "punkt-cli: %v\n", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "punkt-cli",
		Usage:     "train and apply unsupervised sentence boundary models",
		Version:   fmt.Sprintf("%s (%s, %s)", version, commit, date),
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		// Errors are reported by main, not by exiting inside the app.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"PUNKT_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override the configured log level",
			},
		},
		Commands: []*cli.Command{
			trainCommand(),
			segmentCommand(),
			tokenizeCommand(),
			explainCommand(),
			replCommand(),
			modelsCommand(),
		},
	}
}

// loadConfig reads the configuration named by the global flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// modelFlags select the model a command segments with.
func modelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "model file written by train --output",
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "model name in the configured store",
		},
	}
}

// openSegmenter loads the model selected by --model or --name.
func openSegmenter(c *cli.Context) (*punkt.Segmenter, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger(c.App.ErrWriter)

	switch {
	case c.String("model") != "":
		return punkt.New(c.String("model"), punkt.WithLogger(logger))
	case c.String("name") != "":
		s, closeStore, err := cfg.OpenStore()
		if err != nil {
			return nil, err
		}
		defer func() { _ = closeStore() }()

		m, err := s.Load(c.Context, c.String("name"))
		if err != nil {
			return nil, err
		}
		return punkt.NewFromModel(m, punkt.WithLogger(logger))
	}
	return nil, errors.New("one of --model or --name is required")
}

// inputText returns the command arguments joined, or stdin when there are
// none.
func inputText(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	b, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}
