package bench

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
)

// Baseline segments with a pretrained NLTK Punkt model, for comparing a
// trained model against published parameters.
type Baseline struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewBaseline loads the bundled English NLTK parameters.
func NewBaseline() (*Baseline, error) {
	b, err := sentencesdata.Asset("data/english.json")
	if err != nil {
		return nil, fmt.Errorf("load english punkt data: %w", err)
	}
	return newBaseline(b)
}

// LoadBaseline loads NLTK Punkt parameters exported as JSON.
func LoadBaseline(path string) (*Baseline, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}
	return newBaseline(b)
}

func newBaseline(data []byte) (*Baseline, error) {
	training, err := sentences.LoadTraining(data)
	if err != nil {
		return nil, fmt.Errorf("parse punkt data: %w", err)
	}
	return &Baseline{tokenizer: sentences.NewSentenceTokenizer(training)}, nil
}

// SegmentWithBoundaries implements Segmenter. Boundaries are the offsets
// where each sentence ends, trailing whitespace excluded.
func (b *Baseline) SegmentWithBoundaries(ctx context.Context, text string) ([]string, []int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var (
		sents      []string
		boundaries []int
	)
	for _, s := range b.tokenizer.Tokenize(text) {
		trimmed := strings.TrimRightFunc(s.Text, unicode.IsSpace)
		sent := strings.TrimLeftFunc(trimmed, unicode.IsSpace)
		if sent == "" {
			continue
		}
		sents = append(sents, sent)
		boundaries = append(boundaries, s.Start+len(trimmed))
	}
	return sents, boundaries, nil
}
