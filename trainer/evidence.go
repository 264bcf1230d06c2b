package trainer

import (
	"maps"
	"strings"

	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/scanner"
	"github.com/jamesainslie/go-punkt/sentence"
)

// internalPunct follows abbreviations but never ends a sentence.
const internalPunct = ",:;"

// Evidence is the second-pass table, gathered by annotating text with the
// abbreviations derived from Counts.
type Evidence struct {
	// SentBreaks is the number of tokens the first pass marked as ending a
	// sentence.
	SentBreaks int
	// Ortho records the case and position each type was seen in.
	Ortho map[string]model.Ortho
	// SentStarts counts alphabetic types directly after a sentence break.
	SentStarts map[string]int
	// Collocations counts candidate pairs after period-final tokens.
	Collocations map[model.Pair]int
	// Rare holds context for infrequent period-final types that the first
	// pass treated as sentence ends.
	Rare map[string]*RareEvidence
}

// RareEvidence is what follows an infrequent period-final type.
type RareEvidence struct {
	// InternalPunct counts followers that start with , : or ;.
	InternalPunct int
	// LowerFollowers are the lower-case types seen after it.
	LowerFollowers map[string]struct{}
}

// NewEvidence returns an empty table.
func NewEvidence() *Evidence {
	return &Evidence{
		Ortho:        make(map[string]model.Ortho),
		SentStarts:   make(map[string]int),
		Collocations: make(map[model.Pair]int),
		Rare:         make(map[string]*RareEvidence),
	}
}

// Observe annotates text with abbrevs and records its evidence.
func (e *Evidence) Observe(text string, abbrevs sentence.Abbreviations, cfg Config) {
	var (
		prev     sentence.Annotated
		havePrev bool
		pos      = model.PositionInternal
	)
	for tok := range scanner.Scan(text) {
		cur := sentence.FirstPass(tok, abbrevs)

		if cur.ParaStart && pos != model.PositionUnknown {
			pos = model.PositionInitial
		}
		if cur.LineStart && pos == model.PositionInternal {
			pos = model.PositionUnknown
		}
		if flag := model.OrthoFlag(pos, cur.FirstUpper(), cur.FirstLower()); flag != 0 {
			e.Ortho[cur.TypeNoSentPeriod()] |= flag
		}

		switch {
		case cur.SentBreak:
			e.SentBreaks++
			if numberOrInitial(cur) {
				pos = model.PositionUnknown
			} else {
				pos = model.PositionInitial
			}
		case cur.Ellipsis || cur.Abbr:
			pos = model.PositionUnknown
		default:
			pos = model.PositionInternal
		}

		if havePrev {
			e.observePair(prev, cur, abbrevs, cfg)
		}
		prev, havePrev = cur, true
	}
}

func (e *Evidence) observePair(prev, next sentence.Annotated, abbrevs sentence.Abbreviations, cfg Config) {
	if prev.PeriodFinal() && prev.SentBreak && !prev.Abbr {
		e.observeRare(prev, next, abbrevs)
	}

	if prev.SentBreak && !numberOrInitial(prev) && next.IsAlpha() {
		e.SentStarts[next.Type]++
	}

	if !prev.PeriodFinal() {
		return
	}
	collocCandidate := cfg.IncludeAllCollocs ||
		(cfg.IncludeAbbrevCollocs && prev.Abbr) ||
		(prev.SentBreak && numberOrInitial(prev))
	if collocCandidate && prev.IsNonPunct() && next.IsNonPunct() {
		e.Collocations[model.Pair{First: prev.TypeNoPeriod(), Second: next.TypeNoSentPeriod()}]++
	}
}

func (e *Evidence) observeRare(prev, next sentence.Annotated, abbrevs sentence.Abbreviations) {
	typ := prev.TypeNoSentPeriod()
	if !isCandidate(typ) || abbrevs.IsAbbreviation(typ) {
		return
	}

	var punct bool
	if next.Text != "" && strings.IndexByte(internalPunct, next.Text[0]) >= 0 {
		punct = true
	} else if !next.FirstLower() {
		return
	}

	r := e.Rare[typ]
	if r == nil {
		r = &RareEvidence{LowerFollowers: make(map[string]struct{})}
		e.Rare[typ] = r
	}
	if punct {
		r.InternalPunct++
		return
	}
	r.LowerFollowers[next.TypeNoSentPeriod()] = struct{}{}
}

// Merge adds o into e. Ortho flags are combined by union.
func (e *Evidence) Merge(o *Evidence) {
	e.SentBreaks += o.SentBreaks
	for typ, flags := range o.Ortho {
		e.Ortho[typ] |= flags
	}
	for typ, n := range o.SentStarts {
		e.SentStarts[typ] += n
	}
	for p, n := range o.Collocations {
		e.Collocations[p] += n
	}
	for typ, r := range o.Rare {
		cur := e.Rare[typ]
		if cur == nil {
			cur = &RareEvidence{LowerFollowers: make(map[string]struct{}, len(r.LowerFollowers))}
			e.Rare[typ] = cur
		}
		cur.InternalPunct += r.InternalPunct
		maps.Copy(cur.LowerFollowers, r.LowerFollowers)
	}
}

func numberOrInitial(a sentence.Annotated) bool {
	return a.Kind == scanner.KindNumber || a.Kind == scanner.KindInitial
}
