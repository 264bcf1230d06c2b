// Package wordtok splits a sentence into word tokens.
//
// Tokenization is a cascade of stages over the whitespace-separated
// chunks of the sentence. Each stage splits spans of the original text
// into smaller spans, so every token keeps its byte offsets:
//
//  1. quotes: opening quotes, straight opening double quotes, quoted
//     single letters
//  2. punctuation: commas and colons (not inside numbers), period runs,
//     symbols, ? and !, trailing apostrophes, asterisks, and the
//     sentence-final period
//  3. brackets and dash runs
//  4. closing quotes, straight closing double quotes and clitics
//
// Straight double quotes are emitted in treebank form:
//
//	``  opening
//	''  closing
//
// Output joined by single spaces tokenizes to itself.
package wordtok

import "iter"

// Spans returns the tokens of sentence with their offsets, lazily.
func Spans(sentence string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		cs := chunks(sentence)
		for i, c := range cs {
			for _, s := range tokenizeChunk(c, i == len(cs)-1) {
				s.locked = false
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Words returns the token forms of sentence, lazily.
func Words(sentence string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for s := range Spans(sentence) {
			if !yield(s.Form) {
				return
			}
		}
	}
}

// Tokenize returns the tokens of sentence.
func Tokenize(sentence string) []string {
	var out []string
	for w := range Words(sentence) {
		out = append(out, w)
	}
	return out
}

// SpanTokenize returns the tokens of sentence with their offsets.
// sentence[s.Start:s.End] == s.Text for every span.
func SpanTokenize(sentence string) []Span {
	var out []Span
	for s := range Spans(sentence) {
		out = append(out, s)
	}
	return out
}

func tokenizeChunk(c Span, last bool) []Span {
	spans := []Span{c}
	for _, st := range pipeline {
		spans = st(spans, last)
	}
	return spans
}
