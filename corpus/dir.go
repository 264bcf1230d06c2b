package corpus

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Dir reads every .txt, .html and .htm file below a directory, in
// lexical path order. Other files are skipped.
type Dir struct {
	Root string
}

// Documents implements Reader.
func (d Dir) Documents(ctx context.Context) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		paths, err := d.files()
		if err != nil {
			yield(Document{}, err)
			return
		}

		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				yield(Document{}, err)
				return
			}
			doc, err := readFile(path)
			if err != nil {
				yield(Document{}, err)
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}

func (d Dir) files() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(d.Root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".html", ".htm":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing corpus %s: %w", d.Root, err)
	}
	slices.Sort(paths)
	return paths, nil
}

func readFile(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := checkText(path, b); err != nil {
		return Document{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err := HTMLText(b)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %s: %w", ErrInput, path, err)
		}
		return Document{Name: path, Text: text}, nil
	}
	return Document{Name: path, Text: string(b)}, nil
}

// blocks are the elements whose text becomes a paragraph.
const blocks = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre, td, dd, dt"

// HTMLText extracts readable text from an HTML page: one paragraph per
// block element, separated by blank lines. Scripts and styles are dropped.
// A page without block elements yields the text of its body.
func HTMLText(b []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, template").Remove()

	var paras []string
	doc.Find(blocks).Each(func(_ int, s *goquery.Selection) {
		// Nested blocks are reported by their innermost element.
		if s.Find(blocks).Length() > 0 {
			return
		}
		if text := collapseSpace(s.Text()); text != "" {
			paras = append(paras, text)
		}
	})
	if len(paras) == 0 {
		return collapseSpace(doc.Find("body").Text()), nil
	}
	return strings.Join(paras, "\n\n"), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
