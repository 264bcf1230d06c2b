package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	punkt "github.com/jamesainslie/go-punkt"
	"github.com/jamesainslie/go-punkt/corpus"
	"github.com/jamesainslie/go-punkt/internal/config"
	"github.com/jamesainslie/go-punkt/model"
)

func trainCommand() *cli.Command {
	return &cli.Command{
		Name:      "train",
		Usage:     "learn a model from plain text and HTML files",
		ArgsUsage: "CORPUS_DIR...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the model to this file"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "save the model under this name in the configured store"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "documents trained concurrently (default: config or CPU count)"},
			&cli.Float64Flag{Name: "abbrev-threshold", Usage: "minimum abbreviation score"},
			&cli.BoolFlag{Name: "progress", Value: true, Usage: "show progress bars"},
		},
		Action: runTrain,
	}
}

func runTrain(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("train: at least one corpus directory is required")
	}
	if c.String("output") == "" && c.String("name") == "" {
		return errors.New("train: one of --output or --name is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("workers") {
		cfg.Training.Workers = c.Int("workers")
	}
	if c.IsSet("abbrev-threshold") {
		cfg.Training.Thresholds.Abbrev = c.Float64("abbrev-threshold")
	}
	logger := cfg.Logger(c.App.ErrWriter)

	var docs []corpus.Document
	for _, dir := range c.Args().Slice() {
		d, err := corpus.ReadAll(c.Context, corpus.Dir{Root: dir})
		if err != nil {
			return err
		}
		docs = append(docs, d...)
	}
	logger.Info("corpus loaded", "documents", len(docs))

	opts := cfg.Options(logger)
	if c.Bool("progress") && len(docs) > 0 {
		pb := startProgress(c, len(docs))
		defer pb.stop()
		opts = append(opts, punkt.WithProgress(pb.advance))
	}

	m, err := punkt.Train(c.Context, slices.Values(corpus.Texts(docs)), opts...)
	if err != nil {
		return err
	}
	return saveModel(c, cfg, m)
}

// progressBars shows one bar per training pass.
type progressBars struct {
	p    *uiprogress.Progress
	bars [2]*uiprogress.Bar
	once sync.Once
}

func startProgress(c *cli.Context, total int) *progressBars {
	p := uiprogress.New()
	p.SetOut(c.App.ErrWriter)
	pb := &progressBars{p: p}
	for i, name := range []string{"counting", "annotating"} {
		bar := p.AddBar(total).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(*uiprogress.Bar) string { return fmt.Sprintf("%-10s", name) })
		pb.bars[i] = bar
	}
	p.Start()
	return pb
}

// advance is a training progress callback. It may be called concurrently.
func (pb *progressBars) advance(pass, _ int) {
	if pass >= 1 && pass <= len(pb.bars) {
		pb.bars[pass-1].Incr()
	}
}

func (pb *progressBars) stop() {
	pb.once.Do(pb.p.Stop)
}

func saveModel(c *cli.Context, cfg config.Config, m *model.Model) error {
	if path := c.String("output"); path != "" {
		blob, err := model.Marshal(m)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return fmt.Errorf("writing model: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "model written to %s (%d abbreviations, %d collocations, %d sentence starters)\n",
			path, len(m.Abbreviations()), len(m.Collocations()), len(m.SentStarters()))
	}

	if name := c.String("name"); name != "" {
		s, closeStore, err := cfg.OpenStore()
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()
		if err := s.Save(c.Context, name, m); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "model saved as %q\n", name)
	}
	return nil
}
