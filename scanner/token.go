// Package scanner splits raw text into the orthographic tokens used for
// sentence boundary detection.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the shape of a token, decided once by the scanner.
type Kind uint8

const (
	// KindWord is a run of word material without a trailing period.
	KindWord Kind = iota
	// KindPeriodFinal is word material immediately followed by one period.
	KindPeriodFinal
	// KindInitial is a single letter followed by a period ("J.").
	KindInitial
	// KindNumber is numeric material, with or without a trailing period.
	KindNumber
	// KindEllipsis is a run of two or more periods, possibly spaced.
	KindEllipsis
	// KindPunct is a single punctuation character or a dash run.
	KindPunct
	// KindQuote is a quotation mark or apostrophe on its own.
	KindQuote
)

var kindNames = [...]string{
	KindWord:        "word",
	KindPeriodFinal: "period-final",
	KindInitial:     "initial",
	KindNumber:      "number",
	KindEllipsis:    "ellipsis",
	KindPunct:       "punct",
	KindQuote:       "quote",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// NumberType is the type shared by all numeric tokens.
const NumberType = "##number##"

// Token is a span of source text with its shape and statistical type.
type Token struct {
	Text  string
	Type  string // lowercased, digits collapsed to NumberType
	Start int    // byte offset in original text
	End   int    // byte offset in original text
	Kind  Kind

	// ParaStart is set on the first token after a blank line.
	ParaStart bool
	// LineStart is set on the first token of every line.
	LineStart bool
}

// PeriodFinal reports whether the token text ends with a period.
func (t Token) PeriodFinal() bool {
	return strings.HasSuffix(t.Text, ".")
}

// TypeNoPeriod returns the type without its trailing period.
func (t Token) TypeNoPeriod() string {
	if len(t.Type) > 1 && t.Type[len(t.Type)-1] == '.' {
		return t.Type[:len(t.Type)-1]
	}
	return t.Type
}

// TypeNoSentPeriod returns the type without the trailing period when that
// period was judged to end a sentence.
func (t Token) TypeNoSentPeriod(sentbreak bool) string {
	if sentbreak {
		return t.TypeNoPeriod()
	}
	return t.Type
}

// FirstUpper reports whether the token starts with an upper-case letter.
func (t Token) FirstUpper() bool {
	r, _ := utf8.DecodeRuneInString(t.Text)
	return unicode.IsUpper(r)
}

// FirstLower reports whether the token starts with a lower-case letter.
func (t Token) FirstLower() bool {
	r, _ := utf8.DecodeRuneInString(t.Text)
	return unicode.IsLower(r)
}

// IsAlpha reports whether the token consists of letters only.
func (t Token) IsAlpha() bool {
	if t.Text == "" {
		return false
	}
	for _, r := range t.Text {
		if !isLetter(r) {
			return false
		}
	}
	return true
}

// IsNonPunct reports whether the type contains any letter.
func (t Token) IsNonPunct() bool {
	return HasLetter(t.Type)
}

// IsSentenceEnd reports whether the token is a bare sentence-ending mark.
func (t Token) IsSentenceEnd() bool {
	return t.Kind == KindPunct && (t.Text == "." || t.Text == "?" || t.Text == "!")
}

// HasLetter reports whether s contains a letter or underscore.
func HasLetter(s string) bool {
	for _, r := range s {
		if isLetter(r) {
			return true
		}
	}
	return false
}

// isLetter matches word characters that are not digits.
func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Mn, r)
}
