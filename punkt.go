package punkt

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/sentence"
	"github.com/jamesainslie/go-punkt/wordtok"
)

// Segmenter splits text into sentences and words using a trained model.
// It is safe for concurrent use.
type Segmenter struct {
	engine *sentence.Engine
	logger *slog.Logger
}

// New creates a Segmenter from a model file written by model.Marshal.
func New(modelPath string, opts ...Option) (*Segmenter, error) {
	cfg := newConfig(opts)

	blob, err := os.ReadFile(modelPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("reading model file: %w", err)
	}

	m, err := model.Unmarshal(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidModel, modelPath, err)
	}
	cfg.logger.Debug("model loaded",
		"path", modelPath,
		"abbreviations", len(m.Abbreviations()),
		"sent_starters", len(m.SentStarters()),
	)
	return newSegmenter(m, cfg)
}

// NewFromModel creates a Segmenter for an in-memory model.
func NewFromModel(m *model.Model, opts ...Option) (*Segmenter, error) {
	return newSegmenter(m, newConfig(opts))
}

func newSegmenter(m *model.Model, cfg config) (*Segmenter, error) {
	eng, err := sentence.New(m)
	if err != nil {
		return nil, err
	}
	return &Segmenter{engine: eng, logger: cfg.logger}, nil
}

// Model returns the model the Segmenter decides with.
func (s *Segmenter) Model() *model.Model {
	return s.engine.Model()
}

// Sentences returns the sentence spans of text lazily. The spans tile
// text. Invalid UTF-8 is not checked; use Segment for validated input.
func (s *Segmenter) Sentences(text string) iter.Seq[sentence.Span] {
	return s.engine.Segment(text)
}

// IsComplete reports whether text ends on a sentence boundary.
func (s *Segmenter) IsComplete(ctx context.Context, text string) (bool, error) {
	if err := checkInput(ctx, text); err != nil {
		return false, err
	}
	return s.engine.EndsSentence(text), nil
}

// Segment splits text into sentences with surrounding whitespace removed.
func (s *Segmenter) Segment(ctx context.Context, text string) ([]string, error) {
	spans, err := s.SegmentSpans(ctx, text)
	if err != nil {
		return nil, err
	}

	var sentences []string
	for _, sp := range spans {
		if t := sp.Trimmed(); t != "" {
			sentences = append(sentences, t)
		}
	}
	return sentences, nil
}

// SegmentSpans splits text into sentence spans that tile it: trailing
// whitespace belongs to the sentence before it.
func (s *Segmenter) SegmentSpans(ctx context.Context, text string) ([]sentence.Span, error) {
	if err := checkInput(ctx, text); err != nil {
		return nil, err
	}

	var spans []sentence.Span
	for sp := range s.engine.Segment(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		spans = append(spans, sp)
	}
	return spans, nil
}

// SegmentWithBoundaries splits text into sentences and returns boundary positions.
// Boundaries are byte offsets where each sentence ends in the original text.
func (s *Segmenter) SegmentWithBoundaries(ctx context.Context, text string) (sentences []string, boundaries []int, err error) {
	spans, err := s.SegmentSpans(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	for _, sp := range spans {
		trimmed := strings.TrimRightFunc(sp.Text, unicode.IsSpace)
		sent := strings.TrimLeftFunc(trimmed, unicode.IsSpace)
		if sent == "" {
			continue
		}
		sentences = append(sentences, sent)
		boundaries = append(boundaries, sp.Start+len(trimmed))
	}
	return sentences, boundaries, nil
}

// Explain returns the boundary decision, with the rule that settled it,
// for every candidate token in text.
func (s *Segmenter) Explain(ctx context.Context, text string) ([]sentence.Decision, error) {
	if err := checkInput(ctx, text); err != nil {
		return nil, err
	}
	return s.engine.Decisions(text), nil
}

// TokenizeWords splits one sentence into word tokens.
func (s *Segmenter) TokenizeWords(sentence string) []string {
	return wordtok.Tokenize(sentence)
}

// SpanTokenizeWords splits one sentence into word tokens with offsets into
// sentence.
func (s *Segmenter) SpanTokenizeWords(sentence string) []wordtok.Span {
	return wordtok.SpanTokenize(sentence)
}

// TokenizeText splits text into sentences, then each sentence into words,
// and returns the words in document order.
func (s *Segmenter) TokenizeText(ctx context.Context, text string) ([]string, error) {
	spans, err := s.SpanTokenizeText(ctx, text)
	if err != nil {
		return nil, err
	}

	words := make([]string, len(spans))
	for i, sp := range spans {
		words[i] = sp.Form
	}
	return words, nil
}

// SpanTokenizeText is TokenizeText with offsets into text.
func (s *Segmenter) SpanTokenizeText(ctx context.Context, text string) ([]wordtok.Span, error) {
	sents, err := s.SegmentSpans(ctx, text)
	if err != nil {
		return nil, err
	}

	var out []wordtok.Span
	for _, sent := range sents {
		for w := range wordtok.Spans(sent.Text) {
			w.Start += sent.Start
			w.End += sent.Start
			out = append(out, w)
		}
	}
	return out, nil
}

func checkInput(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: text is not valid UTF-8", ErrInput)
	}
	return nil
}
