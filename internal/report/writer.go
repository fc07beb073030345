package report

import (
	"errors"
	"io"

	"github.com/nao1215/compcheck/internal/model"
)

// ErrNoReport is returned when a check without a report is written.
var ErrNoReport = errors.New("check has no report")

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report of check to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(check *model.Check) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// reportOf returns the report of check or ErrNoReport.
func reportOf(check *model.Check) (*model.CompressionReport, error) {
	if check == nil || check.Report == nil {
		return nil, ErrNoReport
	}
	return check.Report, nil
}
