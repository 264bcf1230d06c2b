package trainer

import (
	"maps"
	"strings"

	"github.com/jamesainslie/go-punkt/scanner"
)

// TypeStats are the first-pass counts of one type. Types are keyed without
// their final period, so "dr" covers both "dr" and "dr.".
type TypeStats struct {
	// Count is the number of occurrences with or without a final period.
	Count int
	// PeriodFinal is the number of occurrences with a final period.
	PeriodFinal int
}

// Counts is the first-pass frequency table. Counts only grow.
type Counts struct {
	Types        map[string]TypeStats
	Tokens       int
	PeriodTokens int
}

// NewCounts returns an empty table.
func NewCounts() *Counts {
	return &Counts{Types: make(map[string]TypeStats)}
}

// Observe adds the tokens of text.
func (c *Counts) Observe(text string) {
	for tok := range scanner.Scan(text) {
		c.add(tok)
	}
}

func (c *Counts) add(tok scanner.Token) {
	c.Tokens++
	if tok.PeriodFinal() {
		c.PeriodTokens++
	}
	base, final := splitPeriod(tok.Type)
	s := c.Types[base]
	s.Count++
	if final {
		s.PeriodFinal++
	}
	c.Types[base] = s
}

// Merge adds o into c.
func (c *Counts) Merge(o *Counts) {
	c.Tokens += o.Tokens
	c.PeriodTokens += o.PeriodTokens
	for typ, s := range o.Types {
		cur := c.Types[typ]
		cur.Count += s.Count
		cur.PeriodFinal += s.PeriodFinal
		c.Types[typ] = cur
	}
}

// Freq returns the number of occurrences of exactly typ: "dr." counts only
// the period-final form, "dr" only the bare one.
func (c *Counts) Freq(typ string) int {
	base, final := splitPeriod(typ)
	s := c.Types[base]
	if final {
		return s.PeriodFinal
	}
	return s.Count - s.PeriodFinal
}

// count returns the occurrences of typ and typ followed by a period.
func (c *Counts) count(typ string) int {
	base, final := splitPeriod(typ)
	if final {
		return c.Types[base].PeriodFinal
	}
	return c.Types[typ].Count
}

// AbbreviationScore returns the abbreviation score of typ, with or without
// its final period. Types never seen with a period score zero.
func (c *Counts) AbbreviationScore(typ string) float64 {
	base, _ := splitPeriod(typ)
	s := c.Types[base]
	if s.PeriodFinal == 0 || c.Tokens == 0 {
		return 0
	}
	return abbreviationScore(base, s, c.PeriodTokens, c.Tokens)
}

// Abbreviations derives the abbreviation set from the counts: the seeds,
// initials when enabled, and every type scoring at least the threshold.
// Numbers, types without letters and types seen fewer than
// MinAbbrevFrequency times are never scored.
func (c *Counts) Abbreviations(cfg Config) AbbrevSet {
	set := make(AbbrevSet)
	for _, s := range cfg.SeedAbbreviations {
		set.add(strings.TrimSuffix(scanner.Lower(s), "."))
	}
	th := cfg.Thresholds
	for base, s := range c.Types {
		if s.PeriodFinal == 0 || !isCandidate(base) {
			continue
		}
		if s.Count < th.MinAbbrevFrequency {
			continue
		}
		if cfg.InitialsAsAbbreviations && scanner.IsInitialType(base) {
			set.add(base)
			continue
		}
		if abbreviationScore(base, s, c.PeriodTokens, c.Tokens) >= th.Abbrev {
			set.add(base)
		}
	}
	return set
}

func (c *Counts) clone() *Counts {
	return &Counts{
		Types:        maps.Clone(c.Types),
		Tokens:       c.Tokens,
		PeriodTokens: c.PeriodTokens,
	}
}

// splitPeriod strips one final period from typ. A lone "." is its own base.
func splitPeriod(typ string) (string, bool) {
	if len(typ) > 1 && strings.HasSuffix(typ, ".") {
		return typ[:len(typ)-1], true
	}
	return typ, false
}

// AbbrevSet is a set of abbreviation types without their final period.
type AbbrevSet map[string]struct{}

// IsAbbreviation reports whether typ is in the set.
func (s AbbrevSet) IsAbbreviation(typ string) bool {
	_, ok := s[typ]
	return ok
}

func (s AbbrevSet) add(typ string) {
	if typ != "" {
		s[typ] = struct{}{}
	}
}
