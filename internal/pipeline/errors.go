package pipeline

import "errors"

var (
	// ErrNoReport is returned by Check when the pipeline finished without
	// a step producing a report.
	ErrNoReport = errors.New("pipeline finished without a report")

	// ErrMissingOutcome is returned by steps that run before a response
	// has been fetched.
	ErrMissingOutcome = errors.New("no fetched response to process")
)
