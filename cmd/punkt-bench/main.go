package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	punkt "github.com/jamesainslie/go-punkt"
	"github.com/jamesainslie/go-punkt/corpus"
	"github.com/jamesainslie/go-punkt/internal/bench"
	"github.com/jamesainslie/go-punkt/model"
)

// Set at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		modelPath = flag.String("model", "", "Path to a trained model file (default: train one)")
		corpusDir = flag.String("corpus", "testdata/ud-ewt", "Directory of gold corpora: .txt (one sentence per line) and .json")
		trainDir  = flag.String("train", "", "Directory of training text (default: the evaluation corpus)")
		tolerance = flag.Int("tolerance", 3, "Byte tolerance for boundary matching")
		wp        = flag.Float64("wp", 1.0, "Precision weight")
		wr        = flag.Float64("wr", 1.0, "Recall weight")
		sweep     = flag.Bool("sweep", false, "Run abbreviation threshold sweep")
		sweepMin  = flag.Float64("sweep-min", 0.1, "Sweep minimum threshold")
		sweepMax  = flag.Float64("sweep-max", 1.0, "Sweep maximum threshold")
		sweepStep = flag.Float64("sweep-step", 0.1, "Sweep step size")
		baseline  = flag.Bool("baseline", false, "Also evaluate the pretrained NLTK English model")
		verbose   = flag.Bool("v", false, "Log training progress")
		showVer   = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Printf("punkt-bench %s (%s, %s)\n", version, commit, date)
		return
	}

	talks, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d documents from %s\n\n", len(talks), *corpusDir)

	cfg := bench.Config{
		Tolerance:       *tolerance,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx := context.Background()
	train, err := trainingTexts(ctx, *trainDir, talks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading training text: %v\n", err)
		os.Exit(1)
	}

	if *sweep {
		runSweep(ctx, talks, train, cfg, *sweepMin, *sweepMax, *sweepStep, logger)
	} else {
		runSingle(ctx, *modelPath, talks, train, cfg, logger)
	}

	if *baseline {
		runBaseline(ctx, talks, cfg)
	}
}

func trainingTexts(ctx context.Context, dir string, talks []*bench.Talk) ([]string, error) {
	if dir == "" {
		texts := make([]string, len(talks))
		for i, t := range talks {
			texts[i] = t.RawText
		}
		return texts, nil
	}
	docs, err := corpus.ReadAll(ctx, corpus.Dir{Root: dir})
	if err != nil {
		return nil, err
	}
	return corpus.Texts(docs), nil
}

func runSingle(ctx context.Context, modelPath string, talks []*bench.Talk, train []string, cfg bench.Config, logger *slog.Logger) {
	var (
		seg *punkt.Segmenter
		err error
	)
	if modelPath != "" {
		seg, err = punkt.New(modelPath, punkt.WithLogger(logger))
	} else {
		var m *model.Model
		m, err = punkt.Train(ctx, slices.Values(train), punkt.WithLogger(logger))
		if err == nil {
			seg, err = punkt.NewFromModel(m, punkt.WithLogger(logger))
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating segmenter: %v\n", err)
		os.Exit(1)
	}

	m, err := bench.EvaluateCorpus(ctx, seg, talks, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Trained model")
	printMetrics(m)
}

func runSweep(ctx context.Context, talks []*bench.Talk, train []string, cfg bench.Config, min, max, step float64, logger *slog.Logger) {
	thresholds := bench.SweepThresholds(min, max, step)

	fmt.Printf("Abbreviation Threshold Sweep (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 58))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s %-8s\n", "Thresh", "Abbrevs", "Prec", "Rec", "F1", "Weighted")

	results, err := bench.Sweep(ctx, talks, train, cfg, thresholds, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	// Print sorted by threshold for readability
	for _, t := range thresholds {
		for _, r := range results {
			if r.Threshold == t {
				fmt.Printf("%-8.3f %-8d %-8.2f %-8.2f %-8.2f %-8.2f\n",
					r.Threshold, r.Abbreviations, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1, r.Metrics.WeightedScore)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 58))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: %.3f (Weighted: %.2f)\n", best.Threshold, best.Metrics.WeightedScore)
	}
}

func runBaseline(ctx context.Context, talks []*bench.Talk, cfg bench.Config) {
	b, err := bench.NewBaseline()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading baseline: %v\n", err)
		os.Exit(1)
	}
	m, err := bench.EvaluateCorpus(ctx, b, talks, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating baseline: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nNLTK English baseline")
	printMetrics(m)
}

func printMetrics(m bench.Metrics) {
	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.FalseNegatives)
}
