package wordtok

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// stage is one step of the cascade. last is set for the final chunk of
// the sentence.
type stage func(spans []Span, last bool) []Span

var pipeline = []stage{quotes, punctuation, brackets, ending}

const (
	openBrackets = "([{<"
	// closers may follow a sentence-final period.
	closers = "])}>\"'»”’"
	// quoteClosers are closing double quotes.
	quoteClosers = "\"»”"
)

var initialismRe = regexp.MustCompile(`^(?:\p{L}\.){2,}$`)

// quotes isolates opening quotes. A straight double quote, or two
// apostrophes, at the start of a chunk or after an opening bracket takes
// the opening form.
func quotes(spans []Span, _ bool) []Span {
	spans = isolating(anyOf("«“‘„"), nil)(spans)
	spans = isolating(runOf('`', 1), nil)(spans)
	spans = eachSpan(spans, openingQuote)
	return isolating(apostropheBeforeLetter, nil)(spans)
}

func openingQuote(s Span) []Span {
	// A bare '' is a closing quote already emitted by this tokenizer.
	if s.Text == "''" {
		s.locked = true
		return []Span{s}
	}
	return isolate(s, func(text string, i int) int {
		if i > 0 && strings.IndexByte(openBrackets, text[i-1]) < 0 {
			return 0
		}
		switch {
		case strings.HasPrefix(text[i:], "''"):
			return 2
		case text[i] == '"':
			return 1
		}
		return 0
	}, func(p *Span) { p.Form = "``" })
}

// apostropheBeforeLetter matches an apostrophe quoting a single character,
// as in 'v', but not a clitic such as 's or 't.
func apostropheBeforeLetter(text string, i int) int {
	if text[i] != '\'' {
		return 0
	}
	r, size := utf8.DecodeRuneInString(text[i+1:])
	if size == 0 || !isWordRune(r) || strings.ContainsRune("mtsdMTSD", r) {
		return 0
	}
	if next, _ := utf8.DecodeRuneInString(text[i+1+size:]); isWordRune(next) {
		return 0
	}
	return 1
}

// punctuation pads commas, colons, period runs, symbols and sentence
// marks, and splits the sentence-final period.
func punctuation(spans []Span, last bool) []Span {
	if last {
		spans = finalPeriod(spans)
	}
	spans = isolating(commaOrColon, nil)(spans)
	spans = isolating(runOf('.', 2), nil)(spans)
	spans = isolating(anyOf(";@#$%&"), nil)(spans)
	spans = isolating(anyOf("?!"), nil)(spans)
	spans = eachSpan(spans, trailingApostrophe)
	return isolating(anyOf("*"), nil)(spans)
}

// finalPeriod splits the period off the last span, keeping any closing
// quotes and brackets after it as one span. Period runs and initialisms
// like "U.S." keep their period.
func finalPeriod(spans []Span) []Span {
	n := len(spans)
	if n == 0 || spans[n-1].locked {
		return spans
	}
	s := spans[n-1]
	core := strings.TrimRight(s.Text, closers)
	if len(core) < 2 || core[len(core)-1] != '.' || core[len(core)-2] == '.' {
		return spans
	}
	if initialismRe.MatchString(core) {
		return spans
	}

	dot := len(core) - 1
	period := s.sub(dot, dot+1)
	period.locked = true
	out := append(spans[:n-1:n-1], s.sub(0, dot), period)
	if len(core) < len(s.Text) {
		out = append(out, s.sub(len(core), len(s.Text)))
	}
	return out
}

// commaOrColon matches a comma or colon not followed by a digit, so
// "3,000" and "12:30" stay whole.
func commaOrColon(text string, i int) int {
	if text[i] != ',' && text[i] != ':' {
		return 0
	}
	if i+1 < len(text) && text[i+1] >= '0' && text[i+1] <= '9' {
		return 0
	}
	return 1
}

// trailingApostrophe splits a closing apostrophe off s, looking past
// closing double quotes, which ending isolates later.
func trailingApostrophe(s Span) []Span {
	t := s.Text
	end := len(strings.TrimRight(t, quoteClosers))
	if end < 2 || t[end-1] != '\'' || t[end-2] == '\'' {
		return []Span{s}
	}
	q := s.sub(end-1, end)
	q.locked = true
	out := []Span{s.sub(0, end-1), q}
	if end < len(t) {
		out = append(out, s.sub(end, len(t)))
	}
	return out
}

// brackets isolates brackets and dash runs.
func brackets(spans []Span, _ bool) []Span {
	spans = isolating(anyOf("[](){}<>"), nil)(spans)
	return isolating(runOf('-', 2), nil)(spans)
}

// ending isolates closing quotes, emits remaining straight double quotes
// in closing form and splits clitics off their host.
func ending(spans []Span, _ bool) []Span {
	spans = isolating(anyOf("»”’"), nil)(spans)
	spans = isolating(anyOf(`"`), func(p *Span) { p.Form = "''" })(spans)
	spans = isolating(closingApostrophes, nil)(spans)
	return eachSpan(spans, splitClitics)
}

func closingApostrophes(text string, i int) int {
	if i > 0 && strings.HasPrefix(text[i:], "''") {
		return 2
	}
	return 0
}

var clitics = []string{
	"'s", "'S", "'m", "'M", "'d", "'D",
	"'ll", "'LL", "'re", "'RE", "'ve", "'VE", "n't", "N'T",
}

// splitClitics splits clitics off the end of s, repeatedly, so that
// "I'd've" yields I 'd 've.
func splitClitics(s Span) []Span {
	var tail []Span
	for {
		n := cliticSuffix(s.Text)
		if n == 0 {
			break
		}
		end := len(s.Text)
		tail = append(tail, s.sub(end-n, end))
		s = s.sub(0, end-n)
	}

	out := make([]Span, 0, len(tail)+1)
	out = append(out, s)
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}

// cliticSuffix returns the length of a clitic ending t, if a character
// other than an apostrophe precedes it.
func cliticSuffix(t string) int {
	for _, c := range clitics {
		if len(t) > len(c) && strings.HasSuffix(t, c) && t[len(t)-len(c)-1] != '\'' {
			return len(c)
		}
	}
	return 0
}
