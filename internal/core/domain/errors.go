package domain

import "errors"

// Domain errors represent pipeline-level failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRecord indicates a record failed shape validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrUnsupportedType indicates an unknown source or parser type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNoSources indicates the manifest produced no sources to process.
	ErrNoSources = errors.New("no sources matched")

	// ErrMissingBronze indicates a Silver stage found no Bronze file
	// for a source. The source must be ingested first.
	ErrMissingBronze = errors.New("bronze file missing")
)
