// Package sentence decides sentence boundaries in text using a trained
// model.
package sentence

import (
	"iter"
	"strings"

	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/scanner"
)

// Span is a half-open byte range [Start, End) of the source text. Spans
// returned by Segment tile the text: whitespace after a sentence belongs
// to it.
type Span struct {
	Start int
	End   int
	Text  string
}

// Trimmed returns the span text without surrounding whitespace.
func (s Span) Trimmed() string {
	return strings.TrimSpace(s.Text)
}

// Decision records the outcome for one candidate boundary token.
type Decision struct {
	Token  scanner.Token
	Break  bool
	Reason Reason
}

// Engine applies a model to text. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	model *model.Model
}

// New returns an Engine for m. It fails with model.ErrNotTrained when m is
// nil or zero.
func New(m *model.Model) (*Engine, error) {
	if !m.Trained() {
		return nil, model.ErrNotTrained
	}
	return &Engine{model: m}, nil
}

// Model returns the model the engine decides with.
func (e *Engine) Model() *model.Model {
	return e.model
}

// Segment returns the sentences of text as a lazy sequence of spans.
// Concatenating the span texts reproduces text exactly. Empty text yields
// nothing.
func (e *Engine) Segment(text string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		if text == "" {
			return
		}

		start := 0
		emit := func(end int) bool {
			s := Span{Start: start, End: end, Text: text[start:end]}
			start = end
			return yield(s)
		}

		for b := range e.breaks(text) {
			if !emit(b) {
				return
			}
		}
		if start < len(text) {
			emit(len(text))
		}
	}
}

// Spans collects Segment(text).
func (e *Engine) Spans(text string) []Span {
	var spans []Span
	for s := range e.Segment(text) {
		spans = append(spans, s)
	}
	return spans
}

// Sentences returns the trimmed, non-empty sentence strings of text.
func (e *Engine) Sentences(text string) []string {
	var out []string
	for s := range e.Segment(text) {
		if t := s.Trimmed(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// breaks yields the offsets where a new sentence starts. Each offset is
// the start of the first token after a boundary, after any closing quotes
// and brackets have been absorbed into the earlier sentence.
func (e *Engine) breaks(text string) iter.Seq[int] {
	return func(yield func(int) bool) {
		var (
			prev     Annotated
			havePrev bool
			// breakEnd is the end of the sentence being closed, or -1.
			breakEnd = -1
		)
		for tok := range scanner.Scan(text) {
			cur := FirstPass(tok, e.model)
			if havePrev && breakEnd < 0 {
				secondPass(e.model, &prev, cur)
				if prev.SentBreak {
					breakEnd = prev.End
				}
			}
			if breakEnd >= 0 {
				adjacent := cur.Start == breakEnd
				switch {
				case adjacent && closesSentence(cur.Token):
					breakEnd = cur.End
					prev, havePrev = cur, true
					continue
				case adjacent && isWordLike(cur.Token):
					// "what?really" is not a boundary.
				default:
					if !yield(cur.Start) {
						return
					}
				}
				breakEnd = -1
			}
			prev, havePrev = cur, true
		}
	}
}

// Decisions returns the decision for every candidate boundary token in
// text: sentence-end marks, ellipses and period-final tokens.
func (e *Engine) Decisions(text string) []Decision {
	var (
		out      []Decision
		prev     Annotated
		havePrev bool
	)
	record := func(a Annotated, r Reason) {
		if r == ReasonNone {
			r = firstPassReason(a)
		}
		if r == ReasonNone {
			return
		}
		out = append(out, Decision{Token: a.Token, Break: a.SentBreak, Reason: r})
	}

	for tok := range scanner.Scan(text) {
		cur := FirstPass(tok, e.model)
		if havePrev {
			record(prev, secondPass(e.model, &prev, cur))
		}
		prev, havePrev = cur, true
	}
	if havePrev && (prev.PeriodFinal() || prev.IsSentenceEnd()) {
		prev.SentBreak = true
		out = append(out, Decision{Token: prev.Token, Break: true, Reason: ReasonEndOfText})
	}
	return out
}

// EndsSentence reports whether text ends on a sentence boundary: its last
// token, ignoring closing quotes and brackets, is a sentence-end mark or a
// period-final token that is not an abbreviation.
func (e *Engine) EndsSentence(text string) bool {
	var tail []scanner.Token
	for tok := range scanner.Scan(text) {
		if len(tail) > 0 && !closesSentence(tok) {
			tail = tail[:0]
		}
		tail = append(tail, tok)
	}
	for i := len(tail) - 1; i >= 0; i-- {
		tok := tail[i]
		if tok.Kind == scanner.KindQuote || strings.Contains(")]}", tok.Text) {
			continue
		}
		return FirstPass(tok, e.model).SentBreak
	}
	return false
}

// closesSentence reports whether tok, directly after a boundary, belongs
// to the sentence before it.
func closesSentence(tok scanner.Token) bool {
	switch tok.Kind {
	case scanner.KindEllipsis:
		return true
	case scanner.KindQuote:
		return tok.Text != "“" && tok.Text != "‘" && tok.Text != "„" && tok.Text != "«"
	case scanner.KindPunct:
		return strings.Contains(")]}.!?", tok.Text)
	}
	return false
}

func isWordLike(tok scanner.Token) bool {
	switch tok.Kind {
	case scanner.KindWord, scanner.KindNumber, scanner.KindPeriodFinal, scanner.KindInitial:
		return true
	}
	return false
}
