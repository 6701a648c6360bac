package errors

import (
	"fmt"
)

// ParseError represents a manifest parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures manifest validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnresolvedReferenceError reports a template expression referencing a name
// that is not present in the variable context. Resolution is strict: a
// missing name is always a hard failure, never an empty substitution.
type UnresolvedReferenceError struct {
	Reference  string
	Expression string
}

// NewUnresolvedReferenceError constructs an UnresolvedReferenceError.
func NewUnresolvedReferenceError(reference, expression string) error {
	return &UnresolvedReferenceError{Reference: reference, Expression: expression}
}

func (e *UnresolvedReferenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Expression != "" && e.Expression != e.Reference {
		return fmt.Sprintf("unresolved reference %q in expression %q", e.Reference, e.Expression)
	}
	return fmt.Sprintf("unresolved reference %q", e.Reference)
}

// ExecutionError represents a runtime failure while executing an action.
type ExecutionError struct {
	Module string
	Action string
	Err    error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(module, action string, err error) error {
	return &ExecutionError{Module: module, Action: action, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Module != "" && e.Action != "":
		return fmt.Sprintf("execution error in module %s, action %s: %v", e.Module, e.Action, e.Err)
	case e.Module != "":
		return fmt.Sprintf("execution error in module %s: %v", e.Module, e.Err)
	default:
		return fmt.Sprintf("execution error: %v", e.Err)
	}
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ShellExitError carries the exit code and captured stderr of a failed
// non-detached shell command.
type ShellExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ShellExitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stderr != "" {
		return fmt.Sprintf("command %q exited with code %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
}

// WaitTimeoutError reports a wait_for action that never saw its condition
// become true within the configured bound.
type WaitTimeoutError struct {
	Condition string
	Elapsed   string
}

func (e *WaitTimeoutError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("condition %q still false after %s", e.Condition, e.Elapsed)
}
