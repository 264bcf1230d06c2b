package trainer

import (
	"maps"

	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/scanner"
)

// Collector accumulates the statistics of one training shard. It is owned
// by one goroutine at a time. Nothing derived from it is visible until
// Finalize, after which it rejects further input.
type Collector struct {
	cfg       Config
	counts    *Counts
	evidence  *Evidence
	finalized bool
}

// NewCollector returns an empty collector.
func NewCollector(cfg Config) *Collector {
	return &Collector{
		cfg:      cfg,
		counts:   NewCounts(),
		evidence: NewEvidence(),
	}
}

// Observe runs the first pass over text.
func (c *Collector) Observe(text string) error {
	if c.finalized {
		return ErrFinalized
	}
	c.counts.Observe(text)
	return nil
}

// Annotate runs the second pass over text with the abbreviations derived
// from the complete first pass.
func (c *Collector) Annotate(text string, abbrevs AbbrevSet) error {
	if c.finalized {
		return ErrFinalized
	}
	c.evidence.Observe(text, abbrevs, c.cfg)
	return nil
}

// Merge adds the statistics of o into c. Merging is commutative and
// associative, so shards may be combined in any order.
func (c *Collector) Merge(o *Collector) error {
	if c.finalized || o.finalized {
		return ErrFinalized
	}
	c.counts.Merge(o.counts)
	c.evidence.Merge(o.evidence)
	return nil
}

// Counts returns a copy of the first-pass table.
func (c *Collector) Counts() *Counts {
	return c.counts.clone()
}

// Abbreviations derives the abbreviation set for the second pass.
func (c *Collector) Abbreviations() AbbrevSet {
	return c.counts.Abbreviations(c.cfg)
}

// Finalize derives the model from both passes. abbrevs must be the set the
// second pass was annotated with.
func (c *Collector) Finalize(abbrevs AbbrevSet) (*model.Model, error) {
	if c.finalized {
		return nil, ErrFinalized
	}
	c.finalized = true

	th := c.cfg.Thresholds
	p := model.NewParams()
	for typ := range abbrevs {
		p.Abbreviations[typ] = struct{}{}
	}
	for _, typ := range c.rareAbbreviations(abbrevs) {
		p.Abbreviations[typ] = struct{}{}
	}
	p.SentStarters = c.sentStarters()
	p.Collocations = c.collocations(p.SentStarters)
	maps.Copy(p.OrthoContext, c.evidence.Ortho)

	c.cfg.logger().Debug("training finalized",
		"tokens", c.counts.Tokens,
		"types", len(c.counts.Types),
		"sentbreaks", c.evidence.SentBreaks,
		"abbreviations", len(p.Abbreviations),
		"sent_starters", len(p.SentStarters),
		"collocations", len(p.Collocations),
	)
	return model.New(p, th), nil
}

// rareAbbreviations returns infrequent types that were followed by
// internal punctuation, or by a lower-case word that is normally only
// capitalized at the start of a sentence.
func (c *Collector) rareAbbreviations(abbrevs AbbrevSet) []string {
	var out []string
	for typ, r := range c.evidence.Rare {
		if abbrevs.IsAbbreviation(typ) || c.counts.Types[typ].Count >= c.cfg.Thresholds.AbbrevBackoff {
			continue
		}
		if r.InternalPunct > 0 || c.lowerAfterCapital(r.LowerFollowers) {
			out = append(out, typ)
		}
	}
	return out
}

func (c *Collector) lowerAfterCapital(followers map[string]struct{}) bool {
	for typ := range followers {
		ortho := c.evidence.Ortho[typ]
		if ortho&model.OrthoBegUpper != 0 && ortho&model.OrthoMidUpper == 0 {
			return true
		}
	}
	return false
}

func (c *Collector) sentStarters() map[string]struct{} {
	out := make(map[string]struct{})
	breaks := float64(c.evidence.SentBreaks)
	if breaks == 0 {
		return out
	}
	n := float64(c.counts.Tokens)
	for typ, atBreak := range c.evidence.SentStarts {
		count := c.counts.count(typ)
		if typ == "" || count < atBreak {
			continue
		}
		ll := colLogLikelihood(breaks, float64(count), float64(atBreak), n)
		if ll >= c.cfg.Thresholds.SentStarter && n/breaks > float64(count)/float64(atBreak) {
			out[typ] = struct{}{}
		}
	}
	return out
}

func (c *Collector) collocations(starters map[string]struct{}) map[model.Pair]struct{} {
	out := make(map[model.Pair]struct{})
	n := float64(c.counts.Tokens)
	for pair, together := range c.evidence.Collocations {
		if _, ok := starters[pair.Second]; ok {
			continue
		}
		first, second := c.counts.count(pair.First), c.counts.count(pair.Second)
		if first <= 1 || second <= 1 {
			continue
		}
		if together <= c.cfg.Thresholds.MinCollocFreq || together > min(first, second) {
			continue
		}
		ll := colLogLikelihood(float64(first), float64(second), float64(together), n)
		if ll >= c.cfg.Thresholds.Collocation && n/float64(first) > float64(second)/float64(together) {
			out[pair] = struct{}{}
		}
	}
	return out
}

// isCandidate reports whether a type could ever be learned as an
// abbreviation.
func isCandidate(typ string) bool {
	return typ != scanner.NumberType && scanner.HasLetter(typ)
}
