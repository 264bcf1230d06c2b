package model

import "errors"

var (
	// ErrNotTrained indicates a nil or zero Model was used for decisions.
	ErrNotTrained = errors.New("punkt: model not trained")

	// ErrFormat indicates a blob that is not a serialized model at all, or
	// one written by an unsupported version.
	ErrFormat = errors.New("punkt: unrecognized model format")

	// ErrCorrupt indicates a blob with a valid header whose body is
	// truncated, malformed or fails its checksum.
	ErrCorrupt = errors.New("punkt: corrupted model data")
)
