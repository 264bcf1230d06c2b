// Package corpus reads training documents for the trainer.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"unicode/utf8"
)

// ErrInput indicates text that could not be decoded as UTF-8.
var ErrInput = errors.New("punkt: invalid input")

// Document is one training text.
type Document struct {
	Name string
	Text string
}

// Reader yields documents. Iteration stops at the first error, which is
// yielded with a zero Document.
type Reader interface {
	Documents(ctx context.Context) iter.Seq2[Document, error]
}

// Strings is an in-memory Reader. Documents are named by their index.
type Strings []string

// Documents implements Reader.
func (s Strings) Documents(ctx context.Context) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		for i, text := range s {
			if err := ctx.Err(); err != nil {
				yield(Document{}, err)
				return
			}
			name := fmt.Sprintf("doc-%d", i)
			if err := checkText(name, []byte(text)); err != nil {
				yield(Document{}, err)
				return
			}
			if !yield(Document{Name: name, Text: text}, nil) {
				return
			}
		}
	}
}

// ReadAll collects every document from r.
func ReadAll(ctx context.Context, r Reader) ([]Document, error) {
	var docs []Document
	for doc, err := range r.Documents(ctx) {
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Texts returns the text of each document.
func Texts(docs []Document) []string {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	return texts
}

func checkText(name string, b []byte) error {
	if !utf8.Valid(b) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInput, name)
	}
	return nil
}
