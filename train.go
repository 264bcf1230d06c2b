package punkt

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/jamesainslie/go-punkt/corpus"
	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/trainer"
)

// Train learns a model from docs. docs is ranged over twice, once per
// training pass, and must yield the same documents both times.
func Train(ctx context.Context, docs iter.Seq[string], opts ...Option) (*model.Model, error) {
	cfg := newConfig(opts)

	start := time.Now()
	m, err := trainer.Train(ctx, docs, cfg.trainerConfig())
	if err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}
	cfg.logger.Info("training complete",
		"duration", time.Since(start),
		"abbreviations", len(m.Abbreviations()),
		"collocations", len(m.Collocations()),
		"sent_starters", len(m.SentStarters()),
	)
	return m, nil
}

// TrainReader reads every document from r and trains on them.
func TrainReader(ctx context.Context, r corpus.Reader, opts ...Option) (*model.Model, error) {
	docs, err := corpus.ReadAll(ctx, r)
	if err != nil {
		return nil, err
	}
	return Train(ctx, slices.Values(corpus.Texts(docs)), opts...)
}
