// Package htmlerr implements the four kinds of failure the parser can
// produce: reportable parse errors, unsupported-construct errors that halt
// parsing, invariant-violation panics, and passthrough I/O errors from the
// test harness.
package htmlerr

import (
	"fmt"
	"strings"
)

// ParseError represents a single spec-defined parse error with location
// information. These are reportable but never fatal; the machine continues.
type ParseError struct {
	// Code is the error code (e.g., "unexpected-null-character"), drawn
	// from the WHATWG HTML5 specification's code list.
	Code string

	// Line and Column are 1-based. Zero means the position wasn't tracked.
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Code, e.Line, e.Column, Message(e.Code))
	}
	return fmt.Sprintf("%s: %s", e.Code, Message(e.Code))
}

// ParseErrors is a collection of parse errors, returned from Parse when
// error collection is enabled.
type ParseErrors []*ParseError

func (e ParseErrors) Error() string {
	if len(e) == 0 {
		return "no parse errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d parse errors:\n", len(e))
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

func (e ParseErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// UnsupportedConstructError reports that the input exercised a tokenizer
// state or insertion mode this subset doesn't implement. It halts parsing
// and surfaces to the caller of Build/Parse (kind 2 in the taxonomy).
type UnsupportedConstructError struct {
	// Where names the state or insertion mode that cannot continue, e.g.
	// "tokenizer state RCDATAState" or "insertion mode InTable".
	Where string

	// Trigger describes the token or character that caused the halt.
	Trigger string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct: %s reached by %s", e.Where, e.Trigger)
}

// InvariantViolation is the panic value raised for kind-3 failures: bugs in
// the parser itself, never in the input (arena index out of range, pop from
// an empty stack, a duplicate slipping past attribute dedup). Recovering
// from this is not supported; it indicates the implementation is broken.
type InvariantViolation struct {
	What string
}

func (e InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.What)
}

// Violate panics with an InvariantViolation describing what.
func Violate(what string) {
	panic(InvariantViolation{What: what})
}
