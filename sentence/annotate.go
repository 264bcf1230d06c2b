package sentence

import (
	"strings"

	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/scanner"
)

// Abbreviations reports whether a type, without its period, is an
// abbreviation. *model.Model implements it.
type Abbreviations interface {
	IsAbbreviation(typ string) bool
}

// Annotated is a token with its boundary annotations.
type Annotated struct {
	scanner.Token

	SentBreak bool
	Abbr      bool
	Ellipsis  bool
}

// TypeNoSentPeriod strips the period only when it ends a sentence.
func (a Annotated) TypeNoSentPeriod() string {
	return a.Token.TypeNoSentPeriod(a.SentBreak)
}

// FirstPass annotates tok without looking at its neighbours: sentence-end
// marks break, ellipses are flagged, and period-final tokens break unless
// they are known abbreviations.
func FirstPass(tok scanner.Token, abbrevs Abbreviations) Annotated {
	a := Annotated{Token: tok}
	switch {
	case tok.IsSentenceEnd():
		a.SentBreak = true
	case tok.Kind == scanner.KindEllipsis:
		a.Ellipsis = true
	case tok.PeriodFinal() && !strings.HasSuffix(tok.Text, ".."):
		typ := tok.TypeNoPeriod()
		if abbrevs.IsAbbreviation(typ) || abbrevs.IsAbbreviation(lastHyphenPart(typ)) {
			a.Abbr = true
		} else {
			a.SentBreak = true
		}
	}
	return a
}

// lastHyphenPart returns the text after the last hyphen, so "x-ref" is
// checked as "ref".
func lastHyphenPart(typ string) string {
	if i := strings.LastIndexByte(typ, '-'); i >= 0 {
		return typ[i+1:]
	}
	return typ
}

// Reason names the rule that settled a boundary decision.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonSentenceEnd
	ReasonDefaultPeriod
	ReasonKnownAbbreviation
	ReasonEllipsis
	ReasonCollocation
	ReasonAbbrevOrthographic
	ReasonAbbrevSentStarter
	ReasonInitialOrthographic
	ReasonNumberOrthographic
	ReasonInitialSpecialOrthographic
	ReasonInitialSentenceStart
	ReasonEndOfText
)

var reasonNames = [...]string{
	ReasonNone:                       "none",
	ReasonSentenceEnd:                "sentence-end punctuation",
	ReasonDefaultPeriod:              "default decision for period",
	ReasonKnownAbbreviation:          "known abbreviation",
	ReasonEllipsis:                   "ellipsis",
	ReasonCollocation:                "known collocation (both words)",
	ReasonAbbrevOrthographic:         "abbreviation + orthographic heuristic",
	ReasonAbbrevSentStarter:          "abbreviation + frequent sentence starter",
	ReasonInitialOrthographic:        "initial + orthographic heuristic",
	ReasonNumberOrthographic:         "number + orthographic heuristic",
	ReasonInitialSpecialOrthographic: "initial + special orthographic heuristic",
	ReasonInitialSentenceStart:       "initial + sentence starter evidence",
	ReasonEndOfText:                  "end of text",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// firstPassReason describes a first-pass annotation.
func firstPassReason(a Annotated) Reason {
	switch {
	case a.IsSentenceEnd():
		return ReasonSentenceEnd
	case a.Ellipsis:
		return ReasonEllipsis
	case a.Abbr:
		return ReasonKnownAbbreviation
	case a.SentBreak:
		return ReasonDefaultPeriod
	}
	return ReasonNone
}

type starter uint8

const (
	starterUnknown starter = iota
	starterYes
	starterNo
)

// orthoHeuristic decides from orthographic evidence whether tok starts a
// sentence.
func orthoHeuristic(m *model.Model, tok Annotated) starter {
	switch tok.Text {
	case ";", ":", ",", ".", "!", "?":
		return starterNo
	}

	ctx := m.Ortho(tok.TypeNoSentPeriod())
	if tok.FirstUpper() && ctx&model.OrthoLower != 0 && ctx&model.OrthoMidUpper == 0 {
		return starterYes
	}
	if tok.FirstLower() && (ctx&model.OrthoUpper != 0 || ctx&model.OrthoBegLower == 0) {
		return starterNo
	}
	return starterUnknown
}

// secondPass revises the decision for cur using the token that follows
// it. It only modifies cur. ReasonNone means the first pass stands.
func secondPass(m *model.Model, cur *Annotated, next Annotated) Reason {
	if !cur.PeriodFinal() {
		return ReasonNone
	}

	typ := cur.TypeNoPeriod()
	nextTyp := next.TypeNoSentPeriod()
	initial := cur.Kind == scanner.KindInitial

	if m.IsCollocation(typ, nextTyp) {
		cur.SentBreak = false
		cur.Abbr = true
		return ReasonCollocation
	}

	if (cur.Abbr || cur.Ellipsis) && !initial {
		if orthoHeuristic(m, next) == starterYes {
			cur.SentBreak = true
			return ReasonAbbrevOrthographic
		}
		if next.FirstUpper() && m.IsSentStarter(nextTyp) {
			cur.SentBreak = true
			return ReasonAbbrevSentStarter
		}
	}

	if initial || typ == scanner.NumberType {
		switch orthoHeuristic(m, next) {
		case starterNo:
			cur.SentBreak = false
			cur.Abbr = true
			if initial {
				return ReasonInitialOrthographic
			}
			return ReasonNumberOrthographic
		case starterUnknown:
			if initial && next.FirstUpper() && m.Ortho(nextTyp)&model.OrthoLower == 0 {
				cur.SentBreak = false
				cur.Abbr = true
				return ReasonInitialSpecialOrthographic
			}
		case starterYes:
			if initial && cur.Abbr {
				cur.SentBreak = true
				cur.Abbr = false
				return ReasonInitialSentenceStart
			}
		}
	}
	return ReasonNone
}
