package scanner

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// nonWordStart are characters that never begin a word token.
	nonWordStart = "(\"`{[:;&#*@)}]-,"
	// nonWord are characters that end a word token.
	nonWord = ")\";}]*:@'({[!?"
	// quoteChars are scanned as KindQuote when they stand alone.
	quoteChars = "\"'`«»“”‘’„"
)

// Scan returns a lazy sequence of tokens for text. The sequence is
// deterministic and may be ranged over any number of times.
func Scan(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		s := &scan{text: text, norm: newNormalizer()}
		for {
			tok, ok := s.next()
			if !ok {
				return
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// Tokens collects Scan(text) into a slice.
func Tokens(text string) []Token {
	var toks []Token
	for tok := range Scan(text) {
		toks = append(toks, tok)
	}
	return toks
}

type scan struct {
	text    string
	pos     int
	started bool
	norm    *normalizer
}

func (s *scan) next() (Token, bool) {
	newlines := s.skipSpace()
	if s.pos >= len(s.text) {
		return Token{}, false
	}

	tok := Token{Start: s.pos}
	switch {
	case !s.started:
		tok.LineStart = true
		tok.ParaStart = newlines >= 1
	case newlines > 0:
		tok.LineStart = true
		tok.ParaStart = newlines >= 2
	}
	s.started = true

	if n := multiCharAt(s.text, s.pos); n > 0 {
		tok.End = s.pos + n
		tok.Text = s.text[tok.Start:tok.End]
		tok.Kind = KindPunct
		if tok.Text[0] == '.' {
			tok.Kind = KindEllipsis
		}
		tok.Type = tok.Text
		s.pos = tok.End
		return tok, true
	}

	r, size := utf8.DecodeRuneInString(s.text[s.pos:])
	if strings.ContainsRune(nonWordStart, r) {
		tok.End = s.pos + size
	} else {
		tok.End = s.wordEnd(s.pos + size)
	}
	s.pos = tok.End
	tok.Text = s.text[tok.Start:tok.End]
	tok.Type = s.norm.typeOf(tok.Text)
	tok.Kind = classify(tok)
	return tok, true
}

// skipSpace advances past whitespace and returns the number of newlines seen.
func (s *scan) skipSpace() int {
	newlines := 0
	for s.pos < len(s.text) {
		r, size := utf8.DecodeRuneInString(s.text[s.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		if r == '\n' {
			newlines++
		}
		s.pos += size
	}
	return newlines
}

// wordEnd extends a word token that began before pos.
func (s *scan) wordEnd(pos int) int {
	text := s.text
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		switch {
		case unicode.IsSpace(r):
			return pos
		case r == '\'' && s.internalApostrophe(pos):
		case strings.ContainsRune(nonWord, r):
			return pos
		case multiCharAt(text, pos) > 0:
			return pos
		case r == ',' && commaEndsWord(text, pos+size):
			return pos
		}
		pos += size
	}
	return pos
}

// internalApostrophe reports whether the apostrophe at pos sits between two
// letters, as in "don't".
func (s *scan) internalApostrophe(pos int) bool {
	prev, _ := utf8.DecodeLastRuneInString(s.text[:pos])
	next, _ := utf8.DecodeRuneInString(s.text[pos+1:])
	return unicode.IsLetter(prev) && unicode.IsLetter(next)
}

// commaEndsWord reports whether a comma followed by text[pos:] ends a word.
func commaEndsWord(text string, pos int) bool {
	if pos >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return unicode.IsSpace(r) || strings.ContainsRune(nonWord, r) || multiCharAt(text, pos) > 0
}

// multiCharAt returns the byte length of a dash run, period run or spaced
// ellipsis (". . .") starting at pos, or 0.
func multiCharAt(text string, pos int) int {
	if pos >= len(text) {
		return 0
	}
	c := text[pos]
	if c != '-' && c != '.' {
		return 0
	}
	n := 0
	for pos+n < len(text) && text[pos+n] == c {
		n++
	}
	if n >= 2 {
		return n
	}
	if c == '-' {
		return 0
	}

	// spaced ellipsis: (?:\.\s){2,}\.
	i, pairs, end := pos, 0, pos
	for i < len(text) && text[i] == '.' {
		if pairs >= 2 {
			end = i + 1
		}
		if i+1 >= len(text) {
			break
		}
		r, size := utf8.DecodeRuneInString(text[i+1:])
		if !unicode.IsSpace(r) {
			break
		}
		i += 1 + size
		pairs++
	}
	return end - pos
}

func classify(tok Token) Kind {
	text := tok.Text
	if utf8.RuneCountInString(text) == 1 {
		r, _ := utf8.DecodeRuneInString(text)
		switch {
		case strings.ContainsRune(quoteChars, r):
			return KindQuote
		case unicode.IsDigit(r):
			return KindNumber
		case isLetter(r):
			return KindWord
		default:
			return KindPunct
		}
	}
	switch {
	case tok.Type == NumberType:
		return KindNumber
	case initialRe.MatchString(text):
		return KindInitial
	case strings.HasSuffix(text, "."):
		return KindPeriodFinal
	default:
		return KindWord
	}
}
