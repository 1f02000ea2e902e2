// Package diagnostics defines the error values produced by the match
// checking engine.
//
// Two tiers exist. DiagnosticError carries an ordinary, user-facing
// condition (a non-exhaustive match, an unreachable arm) that the caller
// decides how to surface. InternalError marks a broken invariant inside the
// engine itself: mismatched row widths, a meta-constructor where a base one
// was required, and so on. A wrong verdict would be a soundness bug, so
// internal errors abort the current analysis instead of degrading into a
// guess.
package diagnostics

import (
	"fmt"

	"github.com/google/uuid"
)

// DiagnosticError is an expected analysis outcome that the caller may
// surface as a compiler diagnostic.
type DiagnosticError struct {
	Code string
	Msg  string
}

func (e *DiagnosticError) Error() string {
	if e.Code == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Errorf builds a DiagnosticError with the given code.
func Errorf(code, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// InternalError reports a violated engine invariant. The ID tags the
// occurrence so bug reports can be correlated with debug traces.
type InternalError struct {
	ID  string
	Msg string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error [%s]: %s", e.ID, e.Msg)
}

// Bugf aborts the current analysis with an InternalError. The panic is
// recovered at the engine's public entrypoints via RecoverInternal.
func Bugf(format string, args ...interface{}) {
	panic(&InternalError{
		ID:  uuid.NewString(),
		Msg: fmt.Sprintf(format, args...),
	})
}

// RecoverInternal converts an in-flight Bugf panic into an error assigned
// to *err. Intended usage:
//
//	defer diagnostics.RecoverInternal(&err)
//
// Panics that are not InternalError are re-raised untouched.
func RecoverInternal(err *error) {
	if r := recover(); r != nil {
		ice, ok := r.(*InternalError)
		if !ok {
			panic(r)
		}
		*err = ice
	}
}
