package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors of the reconciliation taxonomy. Parse, format and
// source-not-found errors are recoverable; IO failures are fatal for the
// write that raised them.
var (
	ErrParse          = errors.New("parse error")
	ErrFormat         = errors.New("format error")
	ErrSourceNotFound = errors.New("source not found")
	ErrIOFailure      = errors.New("io failure")
)

// ParseError reports a line that does not follow the expected grammar.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d does not match the record grammar: %q", e.Line, e.Text)
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// FormatError reports an amount string that is not a valid decimal.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid amount %q", e.Value)
}

// Is implements errors.Is support
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// SourceNotFoundError reports an input file or folder that could not be opened.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source %s not found: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceNotFoundError) Is(target error) bool {
	return target == ErrSourceNotFound
}

// IOFailureError reports a destination that could not be written.
type IOFailureError struct {
	Path string
	Err  error
}

func (e *IOFailureError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOFailureError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *IOFailureError) Is(target error) bool {
	return target == ErrIOFailure
}
