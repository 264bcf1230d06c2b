//go:build ignore

// Convert UD English Web Treebank CoNLL-U files into gold boundary files
// for punkt-bench, plus raw training text for punkt-cli train.
// Usage: go run ./scripts/process-ud-ewt.go
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const source = "https://github.com/UniversalDependencies/UD_English-EWT"

// Gold is the layout internal/bench.LoadGold reads.
type Gold struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	Text       string `json:"text"`
	Sentences  int    `json:"sentences"`
	Boundaries []int  `json:"boundaries"` // byte offsets where sentences end
}

// sentence is one "# text =" line and whether a paragraph starts with it.
type sentence struct {
	text   string
	newPar bool
}

func main() {
	inDir := "testdata/ud-ewt"
	goldDir := "testdata/ud-ewt"
	trainDir := "testdata/train"

	if err := os.MkdirAll(trainDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", trainDir, err)
		os.Exit(1)
	}

	for _, split := range []string{"train", "dev", "test"} {
		inFile := filepath.Join(inDir, fmt.Sprintf("en_ewt-ud-%s.conllu", split))

		fmt.Printf("Processing %s...\n", split)
		sents, err := readCoNLLU(inFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inFile, err)
			continue
		}
		gold := buildGold("UD-EWT-"+split, sents)

		if split == "train" {
			// Training text is unannotated; boundaries are only used to score.
			out := filepath.Join(trainDir, "ud-ewt-train.txt")
			if err := os.WriteFile(out, []byte(gold.Text+"\n"), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
				continue
			}
			fmt.Printf("  -> %s (%d chars)\n", out, len(gold.Text))
			continue
		}

		out := filepath.Join(goldDir, split+".json")
		if err := writeGold(out, gold); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
			continue
		}
		fmt.Printf("  -> %s (%d sentences, %d chars)\n", out, gold.Sentences, len(gold.Text))
	}

	fmt.Println("\nDone!")
}

func readCoNLLU(path string) ([]sentence, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var (
		sents  []sentence
		newPar bool
	)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "# newdoc"), strings.HasPrefix(line, "# newpar"):
			newPar = true
		case strings.HasPrefix(line, "# text = "):
			text := strings.TrimSpace(strings.TrimPrefix(line, "# text = "))
			if text != "" {
				sents = append(sents, sentence{text: text, newPar: newPar})
			}
			newPar = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning file: %w", err)
	}
	return sents, nil
}

// buildGold joins sentences with a space, or a blank line where the
// treebank starts a paragraph, and records where each sentence ends.
func buildGold(name string, sents []sentence) *Gold {
	var text strings.Builder
	boundaries := make([]int, 0, len(sents))
	for i, s := range sents {
		if i > 0 {
			if s.newPar {
				text.WriteString("\n\n")
			} else {
				text.WriteString(" ")
			}
		}
		text.WriteString(s.text)
		boundaries = append(boundaries, text.Len())
	}

	return &Gold{
		Name:       name,
		Source:     source,
		Text:       text.String(),
		Sentences:  len(sents),
		Boundaries: boundaries,
	}
}

func writeGold(path string, gold *Gold) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(gold)
}
