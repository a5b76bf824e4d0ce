package domain

import (
	"errors"
	"fmt"
)

// Domain errors form the exit taxonomy of cpufreqctl.
// Every failure is terminal for the invocation; nothing is retried.
var (
	// ErrNoArguments indicates a command was invoked without a required action.
	ErrNoArguments = errors.New("no arguments")

	// ErrInvalidArgument indicates a malformed argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange indicates a numeric argument outside its accepted range.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidBackend indicates an unknown backend name.
	ErrInvalidBackend = errors.New("invalid backend")

	// ErrInternal indicates a hardware file or logic failure.
	ErrInternal = errors.New("internal error")

	// ErrBackendNotSupported indicates the backend's control files are absent.
	ErrBackendNotSupported = errors.New("backend not supported")
)

// Exit codes. Values are distinct per error kind.
const (
	ExitSuccess             = 0
	ExitNoArguments         = 1
	ExitInvalidArgument     = 2
	ExitOutOfRange          = 3
	ExitInvalidBackend      = 4
	ExitInternalError       = 5
	ExitBackendNotSupported = 6
)

// InvalidArgumentError reports a malformed value.
type InvalidArgumentError struct {
	Value   string
	Context string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q for %s", e.Value, e.Context)
}

// Unwrap returns ErrInvalidArgument.
func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// OutOfRangeError reports a value outside [Min,Max].
type OutOfRangeError struct {
	Value int64
	Min   int64
	Max   int64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value %d out of range [%d,%d]", e.Value, e.Min, e.Max)
}

// Unwrap returns ErrOutOfRange.
func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// InvalidBackendError reports an unknown backend name.
type InvalidBackendError struct {
	Name string
}

func (e *InvalidBackendError) Error() string {
	return fmt.Sprintf("invalid backend %q", e.Name)
}

// Unwrap returns ErrInvalidBackend.
func (e *InvalidBackendError) Unwrap() error { return ErrInvalidBackend }

// BackendNotSupportedError reports a backend whose control surface is missing.
// Name is "automatic" when no backend at all is supported.
type BackendNotSupportedError struct {
	Name string
}

func (e *BackendNotSupportedError) Error() string {
	return fmt.Sprintf("backend %q not supported on this system", e.Name)
}

// Unwrap returns ErrBackendNotSupported.
func (e *BackendNotSupportedError) Unwrap() error { return ErrBackendNotSupported }

// InternalError wraps a failure inside a component.
type InternalError struct {
	Component string
	Err       error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("internal error in %s", e.Component)
	}
	return fmt.Sprintf("internal error in %s: %v", e.Component, e.Err)
}

// Unwrap returns both ErrInternal and the cause.
func (e *InternalError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInternal}
	}
	return []error{ErrInternal, e.Err}
}

// Internal wraps err as an InternalError of component.
// A nil err yields nil; an error already in the taxonomy is returned as is.
func Internal(component string, err error) error {
	if err == nil {
		return nil
	}
	if ExitCode(err) != ExitInternalError {
		return err
	}
	var ie *InternalError
	if errors.As(err, &ie) {
		return err
	}
	return &InternalError{Component: component, Err: err}
}

// ExitCode maps an error to its process exit code.
// Errors outside the taxonomy are internal errors.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoArguments):
		return ExitNoArguments
	case errors.Is(err, ErrInvalidArgument):
		return ExitInvalidArgument
	case errors.Is(err, ErrOutOfRange):
		return ExitOutOfRange
	case errors.Is(err, ErrInvalidBackend):
		return ExitInvalidBackend
	case errors.Is(err, ErrBackendNotSupported):
		return ExitBackendNotSupported
	default:
		return ExitInternalError
	}
}
