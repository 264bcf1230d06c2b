// Package model holds the frozen decision tables of a trained sentence
// boundary detector and their binary encoding.
package model

import (
	"maps"
	"slices"
	"strings"

	"github.com/jamesainslie/go-punkt/scanner"
)

// Thresholds are the tunable constants of training. The defaults are the
// published Punkt values.
type Thresholds struct {
	// Abbrev is the minimum abbreviation score.
	Abbrev float64 `yaml:"abbrev"`
	// Collocation is the minimum log-likelihood for a collocation.
	Collocation float64 `yaml:"collocation"`
	// SentStarter is the minimum log-likelihood for a sentence starter.
	SentStarter float64 `yaml:"sent_starter"`
	// AbbrevBackoff is the frequency below which a type may be learned as a
	// rare abbreviation from its context alone.
	AbbrevBackoff int `yaml:"abbrev_backoff"`
	// MinAbbrevFrequency excludes types seen fewer times from scored
	// abbreviation classification.
	MinAbbrevFrequency int `yaml:"min_abbrev_frequency"`
	// MinCollocFreq is the count a pair must exceed to be scored.
	MinCollocFreq int `yaml:"min_colloc_freq"`
}

// DefaultThresholds returns the published defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Abbrev:             0.3,
		Collocation:        7.88,
		SentStarter:        30,
		AbbrevBackoff:      5,
		MinAbbrevFrequency: 1,
		MinCollocFreq:      1,
	}
}

// Pair is an ordered pair of token types.
type Pair struct {
	First  string
	Second string
}

func (p Pair) String() string {
	return p.First + " " + p.Second
}

// Params is the mutable form of the decision tables, used while building
// a Model.
type Params struct {
	Abbreviations map[string]struct{}
	Collocations  map[Pair]struct{}
	SentStarters  map[string]struct{}
	OrthoContext  map[string]Ortho
}

// NewParams returns empty, ready-to-fill Params.
func NewParams() Params {
	return Params{
		Abbreviations: make(map[string]struct{}),
		Collocations:  make(map[Pair]struct{}),
		SentStarters:  make(map[string]struct{}),
		OrthoContext:  make(map[string]Ortho),
	}
}

// Model is an immutable set of decision tables. It is safe for concurrent
// use. The zero Model is untrained.
type Model struct {
	abbrevs      map[string]struct{}
	collocations map[Pair]struct{}
	starters     map[string]struct{}
	ortho        map[string]Ortho
	thresholds   Thresholds
	trained      bool
}

// New freezes p into a Model. The maps in p are copied, so p may be reused.
func New(p Params, t Thresholds) *Model {
	m := &Model{
		abbrevs:      make(map[string]struct{}, len(p.Abbreviations)),
		collocations: make(map[Pair]struct{}, len(p.Collocations)),
		starters:     make(map[string]struct{}, len(p.SentStarters)),
		ortho:        make(map[string]Ortho, len(p.OrthoContext)),
		thresholds:   t,
		trained:      true,
	}
	for typ := range p.Abbreviations {
		m.abbrevs[scanner.Lower(typ)] = struct{}{}
	}
	maps.Copy(m.collocations, p.Collocations)
	maps.Copy(m.starters, p.SentStarters)
	for typ, flags := range p.OrthoContext {
		if flags != 0 {
			m.ortho[typ] = flags
		}
	}
	return m
}

// Trained reports whether m can be used for boundary decisions.
func (m *Model) Trained() bool {
	return m != nil && m.trained
}

// IsAbbreviation reports whether typ (without its period) is an abbreviation.
func (m *Model) IsAbbreviation(typ string) bool {
	_, ok := m.abbrevs[typ]
	return ok
}

// IsCollocation reports whether (first, second) is a known collocation.
func (m *Model) IsCollocation(first, second string) bool {
	_, ok := m.collocations[Pair{first, second}]
	return ok
}

// IsSentStarter reports whether typ frequently starts sentences.
func (m *Model) IsSentStarter(typ string) bool {
	_, ok := m.starters[typ]
	return ok
}

// Ortho returns the orthographic context flags of typ.
func (m *Model) Ortho(typ string) Ortho {
	return m.ortho[typ]
}

// Thresholds returns the constants the model was trained with.
func (m *Model) Thresholds() Thresholds {
	return m.thresholds
}

// Abbreviations returns the abbreviation types in sorted order.
func (m *Model) Abbreviations() []string {
	return slices.Sorted(maps.Keys(m.abbrevs))
}

// SentStarters returns the sentence starter types in sorted order.
func (m *Model) SentStarters() []string {
	return slices.Sorted(maps.Keys(m.starters))
}

// Collocations returns the collocations sorted by first then second type.
func (m *Model) Collocations() []Pair {
	pairs := slices.Collect(maps.Keys(m.collocations))
	slices.SortFunc(pairs, comparePairs)
	return pairs
}

// OrthoTypes returns the types with orthographic context in sorted order.
func (m *Model) OrthoTypes() []string {
	return slices.Sorted(maps.Keys(m.ortho))
}

// Params returns a mutable copy of the decision tables, e.g. to seed a
// retrained model.
func (m *Model) Params() Params {
	p := NewParams()
	maps.Copy(p.Abbreviations, m.abbrevs)
	maps.Copy(p.Collocations, m.collocations)
	maps.Copy(p.SentStarters, m.starters)
	maps.Copy(p.OrthoContext, m.ortho)
	return p
}

// Equal reports whether m and o hold identical tables and thresholds.
func (m *Model) Equal(o *Model) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.trained == o.trained &&
		m.thresholds == o.thresholds &&
		maps.Equal(m.abbrevs, o.abbrevs) &&
		maps.Equal(m.collocations, o.collocations) &&
		maps.Equal(m.starters, o.starters) &&
		maps.Equal(m.ortho, o.ortho)
}

func comparePairs(a, b Pair) int {
	if c := strings.Compare(a.First, b.First); c != 0 {
		return c
	}
	return strings.Compare(a.Second, b.Second)
}
