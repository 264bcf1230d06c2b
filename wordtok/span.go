package wordtok

import (
	"unicode"
	"unicode/utf8"
)

// Span is one output token. Text is the slice of the input it covers and
// Form is the token as emitted; they differ only for straight double
// quotes, which are emitted in their treebank opening or closing form.
type Span struct {
	Text  string
	Form  string
	Start int
	End   int

	// locked spans are final and skipped by later stages.
	locked bool
}

// sub returns the piece of s between byte offsets i and j of s.Text.
func (s Span) sub(i, j int) Span {
	t := s.Text[i:j]
	return Span{Text: t, Form: t, Start: s.Start + i, End: s.Start + j}
}

// matcher returns the byte length of a construct starting at text[i:], or
// zero.
type matcher func(text string, i int) int

// isolate splits every match of m out of s into its own span. Matched
// spans are locked; mark, if non-nil, may rewrite them further.
func isolate(s Span, m matcher, mark func(*Span)) []Span {
	var (
		out  []Span
		text = s.Text
		last = 0
	)
	for i := 0; i < len(text); {
		n := m(text, i)
		if n <= 0 {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		if i > last {
			out = append(out, s.sub(last, i))
		}
		piece := s.sub(i, i+n)
		piece.locked = true
		if mark != nil {
			mark(&piece)
		}
		out = append(out, piece)
		i += n
		last = i
	}
	if out == nil {
		return []Span{s}
	}
	if last < len(text) {
		out = append(out, s.sub(last, len(text)))
	}
	return out
}

// eachSpan applies fn to every unlocked span.
func eachSpan(spans []Span, fn func(Span) []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.locked {
			out = append(out, s)
			continue
		}
		out = append(out, fn(s)...)
	}
	return out
}

// isolating returns a stage step that isolates m everywhere.
func isolating(m matcher, mark func(*Span)) func([]Span) []Span {
	return func(spans []Span) []Span {
		return eachSpan(spans, func(s Span) []Span { return isolate(s, m, mark) })
	}
}

// anyOf matches a single rune from set.
func anyOf(set string) matcher {
	return func(text string, i int) int {
		r, size := utf8.DecodeRuneInString(text[i:])
		for _, c := range set {
			if r == c {
				return size
			}
		}
		return 0
	}
}

// runOf matches atLeast or more consecutive copies of the byte c.
func runOf(c byte, atLeast int) matcher {
	return func(text string, i int) int {
		n := 0
		for i+n < len(text) && text[i+n] == c {
			n++
		}
		if n < atLeast {
			return 0
		}
		return n
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// chunks splits text on whitespace.
func chunks(text string) []Span {
	var (
		out   []Span
		start = -1
	)
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, Span{Text: text[start:i], Form: text[start:i], Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, Span{Text: text[start:], Form: text[start:], Start: start, End: len(text)})
	}
	return out
}
