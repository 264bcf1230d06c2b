package punkt

import (
	"errors"

	"github.com/jamesainslie/go-punkt/corpus"
	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/trainer"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("punkt: model file not found")

	// ErrInvalidModel indicates the model file exists but cannot be decoded.
	// It wraps ErrModelFormat or ErrModelCorrupt.
	ErrInvalidModel = errors.New("punkt: invalid model file")

	// ErrInput indicates text or a corpus document could not be decoded.
	ErrInput = corpus.ErrInput

	// ErrModelNotTrained indicates an empty or zero model.
	ErrModelNotTrained = model.ErrNotTrained

	// ErrModelFormat indicates the data is not a model of a supported version.
	ErrModelFormat = model.ErrFormat

	// ErrModelCorrupt indicates a model that was damaged or truncated.
	ErrModelCorrupt = model.ErrCorrupt

	// ErrFinalized indicates a training collector was used after finalizing.
	ErrFinalized = trainer.ErrFinalized
)
