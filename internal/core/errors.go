package core

import (
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Sentinel causes attached to the errors returned by this package.  The
// errbuilder code and message carry the same information for callers that
// only inspect codes.
var (
	ErrInsufficientInputs = errors.New("insufficient inputs")
	ErrNoValidClasses     = errors.New("no valid classes")
	ErrUnknownElement     = errors.New("unknown element")
	ErrCyclicInheritance  = errors.New("cyclic inheritance")
	ErrValidationFailed   = errors.New("validation failed")
)

func insufficientInputsError(count int) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("at least two schemas are required, got %d", count)).
		WithCause(ErrInsufficientInputs)
}

func noValidClassesError(requested []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("no valid classes found in schema: %v", requested)).
		WithCause(ErrNoValidClasses)
}

func unknownElementError(section string, name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("unknown element: %s %q", section, name)).
		WithCause(ErrUnknownElement)
}

func cyclicInheritanceError(name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("cyclic inheritance at class %q", name)).
		WithCause(ErrCyclicInheritance)
}

func validationFailedError(source string, message string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("schema validation failed for %s: %s", source, message)).
		WithCause(ErrValidationFailed)
}
