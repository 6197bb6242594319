// Package errors provides stack-trace-carrying error wrapping and the
// typed error categories the selection engine reports to its callers.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// WithStackTrace wraps err with a stack trace captured at the call site,
// unless err is already nil or already carries one.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(interface{ StackTrace() errors.StackTrace }); ok {
		return err
	}

	return errors.WithStack(err)
}

// Errorf formats a new error and attaches a stack trace, mirroring
// fmt.Errorf but ensuring every engine-originated error carries a trace.
func Errorf(format string, args ...interface{}) error {
	return errors.WithStack(fmt.Errorf(format, args...))
}

// Unwrap returns the innermost cause of err, peeling away any stack
// traces added by WithStackTrace/Errorf.
func Unwrap(err error) error {
	return errors.Cause(err)
}

// IsError returns true if actual, once unwrapped, is the same error as
// expected (by ==) or reports equal via Is.
func IsError(actual, expected error) bool {
	if actual == nil || expected == nil {
		return actual == expected
	}

	return Unwrap(actual) == expected || errors.Is(actual, expected)
}

// Recover turns a panic into an error via onError, for use at the top of
// a CLI command's action. It must be deferred directly.
func Recover(onError func(cause error)) {
	if r := recover(); r != nil {
		if err, ok := r.(error); ok {
			onError(WithStackTrace(err))
			return
		}

		onError(fmt.Errorf("%v", r))
	}
}

// EngineError is implemented by every typed error the selection engine
// can return from select-steps, per the error surface in spec §6/§7.
type EngineError interface {
	error
	engineError()
}

// ConfigError reports a bad configuration value discovered while
// preparing a parse tree for selection (currently: an over-long root
// temp directory for step directories, C2).
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }
func (ConfigError) engineError()    {}

// NewWorkflowDirTooLong builds the verbatim error spec §6 requires for
// an over-long root temp directory.
func NewWorkflowDirTooLong(dir string) error {
	return WithStackTrace(ConfigError{Message: fmt.Sprintf("workflow directory name %s is too long.", dir)})
}

// TargetNotFound is returned when a target expression matches zero
// steps (C5).
type TargetNotFound struct {
	Name string
}

func (e TargetNotFound) Error() string { return fmt.Sprintf("target not found: %s", e.Name) }
func (TargetNotFound) engineError()    {}

// CycleDetected is returned when expansion discovers that the
// parent/child relation is not acyclic (C6), or DAG construction
// rejects a cycle (C3).
type CycleDetected struct {
	// Chain is the comma-joined-outputs representation of every step in
	// the cycle, in traversal order, with the first step repeated at the
	// end to show closure.
	Chain []string
}

func (e CycleDetected) Error() string {
	msg := "cycle dependency detected: "
	for i, s := range e.Chain {
		if i > 0 {
			msg += " -> "
		}
		msg += s
	}

	return msg
}
func (CycleDetected) engineError() {}

// OutputConflict is returned when two selected steps would produce the
// same normalized output (C7).
type OutputConflict struct {
	Duplicates []string
}

func (e OutputConflict) Error() string {
	msg := "duplicated outputs: "
	for i, d := range e.Duplicates {
		if i > 0 {
			msg += ", "
		}
		msg += d
	}

	return msg
}
func (OutputConflict) engineError() {}

// InvalidRegex is returned when a target's regex body fails to compile
// (C5).
type InvalidRegex struct {
	Pattern string
	Cause   error
}

func (e InvalidRegex) Error() string {
	return fmt.Sprintf("invalid regex %q: %v", e.Pattern, e.Cause)
}
func (InvalidRegex) engineError() {}
