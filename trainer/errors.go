package trainer

import "errors"

var (
	// ErrFinalized is returned when a finalized collector is written to.
	ErrFinalized = errors.New("punkt: collector already finalized")

	// ErrPoolClosed is returned by Acquire after Close.
	ErrPoolClosed = errors.New("punkt: collector pool closed")
)
