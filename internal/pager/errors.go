package pager

import "fmt"

// LabeledError is a user-facing input error that points at the offending argument.
type LabeledError struct {
	// Msg is the headline shown after "error:".
	Msg string

	// Text is the label attached to the argument.
	Text string

	// Arg names the argument, e.g. "--start-number".
	Arg string

	// Input is the raw value the user supplied.
	Input string

	// Err is the underlying parse error, if any.
	Err error
}

func (e *LabeledError) Error() string { return e.Msg }

// Label returns the annotation for the offending argument.
func (e *LabeledError) Label() string { return e.Text }

// Span returns the argument as the user wrote it.
func (e *LabeledError) Span() string { return fmt.Sprintf("%s=%s", e.Arg, e.Input) }

func (e *LabeledError) Unwrap() error { return e.Err }
