package scanner

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	numericRe = regexp.MustCompile(`^-?[.,]?\d[\d,.\-]*\.?$`)
	initialRe = regexp.MustCompile(`^[\p{L}_]\.$`)
)

// normalizer maps surface text to statistical types. A cases.Caser keeps
// internal state, so each scan owns its own normalizer.
type normalizer struct {
	lower cases.Caser
}

func newNormalizer() *normalizer {
	return &normalizer{lower: cases.Lower(language.Und)}
}

// typeOf lowercases text and collapses numbers to NumberType.
func (n *normalizer) typeOf(text string) string {
	if numericRe.MatchString(text) {
		return NumberType
	}
	return n.lower.String(text)
}

// Lower lowercases text the way token types are lowercased.
func Lower(text string) string {
	return newNormalizer().lower.String(text)
}

// TypeOf returns the statistical type of a token text.
func TypeOf(text string) string {
	return newNormalizer().typeOf(text)
}

// IsInitialType reports whether typ is a single letter followed by a period,
// or a single letter when the period has already been removed.
func IsInitialType(typ string) bool {
	if initialRe.MatchString(typ) {
		return true
	}
	runes := []rune(typ)
	return len(runes) == 1 && isLetter(runes[0])
}
