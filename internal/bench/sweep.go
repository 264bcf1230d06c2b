package bench

import (
	"context"
	"log/slog"
	"slices"
	"sort"

	punkt "github.com/jamesainslie/go-punkt"
	"github.com/jamesainslie/go-punkt/model"
)

// SweepResult holds metrics for one abbreviation threshold.
type SweepResult struct {
	Threshold float64
	Metrics   Metrics
	// Abbreviations is the number of abbreviations the model learned.
	Abbreviations int
}

// SweepThresholds generates threshold values from min to max with given step.
func SweepThresholds(min, max, step float64) []float64 {
	var thresholds []float64
	for t := min; t < max; t += step {
		thresholds = append(thresholds, t)
	}
	return thresholds
}

// Sweep trains one model per abbreviation threshold on train, evaluates
// each on talks, and returns results sorted by weighted score.
func Sweep(ctx context.Context, talks []*Talk, train []string, cfg Config, thresholds []float64, logger *slog.Logger) ([]SweepResult, error) {
	var results []SweepResult

	for _, threshold := range thresholds {
		t := model.DefaultThresholds()
		t.Abbrev = threshold

		m, err := punkt.Train(ctx, slices.Values(train),
			punkt.WithThresholds(t),
			punkt.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		seg, err := punkt.NewFromModel(m, punkt.WithLogger(logger))
		if err != nil {
			return nil, err
		}

		agg, err := EvaluateCorpus(ctx, seg, talks, cfg)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			Threshold:     threshold,
			Metrics:       agg,
			Abbreviations: len(m.Abbreviations()),
		})
	}

	// Sort by weighted score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results, nil
}
