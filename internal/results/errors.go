package results

import "errors"

var (
	// ErrColumnNotFound means a required role or platform column is missing
	// from the dataset. This is a data-shape mismatch, not a bad query.
	ErrColumnNotFound = errors.New("column not found")

	// ErrNotFound means a well-formed query matched zero records.
	ErrNotFound = errors.New("not found")
)
