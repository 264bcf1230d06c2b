// Package bench evaluates sentence boundary detection against gold
// standard corpora.
package bench

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentence represents a gold sentence with byte offsets into the talk text.
type Sentence struct {
	Text  string
	Start int
	End   int
}

// Talk is one evaluation document with its reference sentences.
type Talk struct {
	ID        string
	Source    string
	RawText   string
	Sentences []Sentence
	// Gold holds annotated boundary offsets. When nil, the ends of
	// Sentences are used.
	Gold []int
}

// NewTalk builds a talk from gold sentences, joined by single spaces.
func NewTalk(id string, sentences []string) *Talk {
	t := &Talk{ID: id}
	var b strings.Builder
	for _, s := range sentences {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		start := b.Len()
		b.WriteString(s)
		t.Sentences = append(t.Sentences, Sentence{Text: s, Start: start, End: b.Len()})
	}
	t.RawText = b.String()
	return t
}

// Boundaries returns the reference boundary offsets of the talk.
func (t *Talk) Boundaries() []int {
	if t.Gold != nil {
		return t.Gold
	}
	ends := make([]int, len(t.Sentences))
	for i, s := range t.Sentences {
		ends[i] = s.End
	}
	return ends
}

// ParseText reads plain-text gold: one sentence per line, a blank line
// between talks. Lines starting with # are comments. Talks are named id
// when there is one, id-1, id-2, ... otherwise.
func ParseText(id, text string) ([]*Talk, error) {
	var (
		blocks  [][]string
		current []string
	)
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "#"):
		case line == "":
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
		default:
			current = append(current, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", id, err)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	talks := make([]*Talk, len(blocks))
	for i, lines := range blocks {
		name := id
		if len(blocks) > 1 {
			name = fmt.Sprintf("%s-%d", id, i+1)
		}
		talks[i] = NewTalk(name, lines)
	}
	return talks, nil
}

// LoadText loads a plain-text gold file.
func LoadText(path string) ([]*Talk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	base := filepath.Base(path)
	return ParseText(strings.TrimSuffix(base, filepath.Ext(base)), string(data))
}

// LoadCorpus loads every plain-text (.txt) and JSON (.json) gold corpus
// in a directory.
func LoadCorpus(dir string) ([]*Talk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var talks []*Talk
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		switch filepath.Ext(entry.Name()) {
		case ".txt":
			loaded, err := LoadText(path)
			if err != nil {
				return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
			}
			talks = append(talks, loaded...)
		case ".json":
			talk, err := LoadGold(path)
			if err != nil {
				return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
			}
			talks = append(talks, talk)
		}
	}

	return talks, nil
}

// goldCorpus is the JSON layout written by scripts/process-ud-ewt.go.
type goldCorpus struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	Text       string `json:"text"`
	Boundaries []int  `json:"boundaries"`
}

// LoadGold loads an annotated corpus in which boundaries are given as
// byte offsets where sentences end.
func LoadGold(path string) (*Talk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var c goldCorpus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, b := range c.Boundaries {
		if b < 0 || b > len(c.Text) {
			return nil, fmt.Errorf("parse %s: boundary %d outside text", path, b)
		}
	}
	if c.Boundaries == nil {
		c.Boundaries = []int{}
	}

	return &Talk{
		ID:      c.Name,
		Source:  c.Source,
		RawText: c.Text,
		Gold:    c.Boundaries,
	}, nil
}
