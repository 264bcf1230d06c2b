// Package trainer learns a sentence boundary model from unannotated text.
//
// Training makes two passes over the corpus. The first counts token types
// and derives the abbreviation set; the second annotates the corpus with
// that set and gathers orthographic, sentence-starter, collocation and
// rare-abbreviation evidence. Each pass can be sharded across workers,
// since partial statistics merge by summation.
package trainer

import (
	"context"
	"iter"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-punkt/model"
)

// Train learns a model from docs, which must yield the same documents each
// time it is ranged over. Documents are processed by cfg.Workers
// goroutines. Cancelling ctx stops training with ctx's error.
func Train(ctx context.Context, docs iter.Seq[string], cfg Config) (*model.Model, error) {
	log := cfg.logger()

	first, err := runPass(ctx, docs, cfg, 1, func(c *Collector, doc string) error {
		return c.Observe(doc)
	})
	if err != nil {
		return nil, err
	}
	abbrevs := first.Abbreviations()
	log.Debug("first pass complete",
		"tokens", first.counts.Tokens,
		"period_tokens", first.counts.PeriodTokens,
		"types", len(first.counts.Types),
		"abbreviations", len(abbrevs),
	)

	second, err := runPass(ctx, docs, cfg, 2, func(c *Collector, doc string) error {
		return c.Annotate(doc, abbrevs)
	})
	if err != nil {
		return nil, err
	}
	if err := second.Merge(first); err != nil {
		return nil, err
	}
	return second.Finalize(abbrevs)
}

// runPass feeds every document to fn with a collector from a pool of
// cfg.Workers, then merges the pool.
func runPass(ctx context.Context, docs iter.Seq[string], cfg Config, pass int, fn func(*Collector, string) error) (*Collector, error) {
	workers := cfg.workers()
	pool := NewPool(cfg, workers)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for doc := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			c, err := pool.Acquire(gctx)
			if err != nil {
				return err
			}
			defer pool.Release(c)
			if err := fn(c, doc); err != nil {
				return err
			}
			if cfg.Progress != nil {
				cfg.Progress(pass, int(done.Add(1)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pool.Close()
}
