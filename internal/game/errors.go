package game

import "errors"

var (
	// ErrInvalidState signals a catalog or configuration defect, such as a
	// location with no creatures. It is fatal to the attempt.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidInput means the caller passed something the catalog does not
	// know. No state is mutated when it is returned.
	ErrInvalidInput = errors.New("invalid input")
)
