package admatrix

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when the input has no usable ad text column.
	ErrMissingColumn = errors.New("input text column not found")
	// ErrEmptyInput is returned for input files without a header row.
	ErrEmptyInput = errors.New("input file is empty")
	// ErrUnknownDimension is returned for dimension names outside Dimensions.
	ErrUnknownDimension = errors.New("unknown dimension")
	// ErrIncompleteRuleSet is returned when a rule set lacks a dimension.
	ErrIncompleteRuleSet = errors.New("incomplete rule set")
	// ErrUnsupportedFormat is returned for unknown input or output formats.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ItemError records why a single ad could not be classified.
type ItemError struct {
	AdID  int
	Cause error
	// Frame is the first stack frame of a recovered panic, empty otherwise.
	Frame string
}

func (e *ItemError) Error() string {
	if e.Frame != "" {
		return fmt.Sprintf("%v | Traceback: %s", e.Cause, e.Frame)
	}
	return e.Cause.Error()
}

func (e *ItemError) Unwrap() error { return e.Cause }
