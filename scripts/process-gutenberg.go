//go:build ignore

// Strip Project Gutenberg downloads to plain prose for training.
// Reads testdata/gutenberg/*_raw.txt and writes testdata/train/<book>.txt.
// Usage: go run ./scripts/process-gutenberg.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	startMarkers = []string{
		"*** START OF THE PROJECT GUTENBERG EBOOK",
		"*** START OF THIS PROJECT GUTENBERG EBOOK",
		"*END*THE SMALL PRINT",
	}
	endMarkers = []string{
		"*** END OF THE PROJECT GUTENBERG EBOOK",
		"*** END OF THIS PROJECT GUTENBERG EBOOK",
		"End of Project Gutenberg",
		"End of the Project Gutenberg",
	}

	chapterRe      = regexp.MustCompile(`(?m)^(Chapter|CHAPTER)\s+([IVX]+|[0-9]+)[\.\]\s]`)
	headingRe      = regexp.MustCompile(`^((Chapter|CHAPTER) .*|[IVXLC]+\.?)$`)
	illustrationRe = regexp.MustCompile(`\[Illustration[^\]]*\]`)
	footnoteRe     = regexp.MustCompile(`\[(Footnote )?[0-9]+\]`)
	emphasisRe     = regexp.MustCompile(`_([^_\n]+)_`)
)

func main() {
	inDir := "testdata/gutenberg"
	outDir := "testdata/train"

	files, err := filepath.Glob(filepath.Join(inDir, "*_raw.txt"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No raw files found in", inDir)
		os.Exit(1)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outDir, err)
		os.Exit(1)
	}

	for _, rawFile := range files {
		name := strings.TrimSuffix(filepath.Base(rawFile), "_raw.txt")
		outFile := filepath.Join(outDir, name+".txt")

		raw, err := os.ReadFile(rawFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", rawFile, err)
			continue
		}
		body := prose(string(raw))
		if err := os.WriteFile(outFile, []byte(body+"\n"), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outFile, err)
			continue
		}
		fmt.Printf("%s -> %s (%d paragraphs)\n", name, outFile, strings.Count(body, "\n\n")+1)
	}
}

// prose returns the book body between the license markers, from the first
// chapter on, as paragraphs separated by blank lines. Headings are dropped
// since they are not sentences.
func prose(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	for _, m := range startMarkers {
		if i := strings.Index(text, m); i != -1 {
			if eol := strings.IndexByte(text[i:], '\n'); eol != -1 {
				text = text[i+eol+1:]
			}
			break
		}
	}
	for _, m := range endMarkers {
		if i := strings.Index(text, m); i != -1 {
			text = text[:i]
			break
		}
	}
	if loc := chapterRe.FindStringIndex(text); loc != nil {
		text = text[loc[0]:]
	}

	text = illustrationRe.ReplaceAllString(text, "")
	text = footnoteRe.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, "$1")

	var (
		paras []string
		para  []string
	)
	flush := func() {
		if len(para) > 0 {
			paras = append(paras, strings.Join(para, " "))
			para = para[:0]
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case len(para) == 0 && headingRe.MatchString(line):
			// skip
		default:
			para = append(para, line)
		}
	}
	flush()
	return strings.Join(paras, "\n\n")
}
