// Package store keeps named, trained models.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jamesainslie/go-punkt/model"
)

var (
	// ErrNotFound indicates no model is stored under the name.
	ErrNotFound = errors.New("punkt: model not found in store")

	// ErrInvalidName indicates a name that cannot be stored.
	ErrInvalidName = errors.New("punkt: invalid model name")
)

// ModelReader defines read operations for model storage.
type ModelReader interface {
	// Load returns the model stored under name.
	Load(ctx context.Context, name string) (*model.Model, error)

	// List returns the stored model names, sorted.
	List(ctx context.Context) ([]string, error)
}

// ModelWriter defines write operations for model storage.
type ModelWriter interface {
	// Save stores m under name, replacing any model already there.
	Save(ctx context.Context, name string, m *model.Model) error
}

// Store combines read and write operations.
type Store interface {
	ModelReader
	ModelWriter
}

// CheckName validates a model name: non-empty, no path separators and no
// leading dot.
func CheckName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
