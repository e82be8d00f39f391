package cmd

import (
	"errors"
	"fmt"

	oerrors "github.com/pagescms/cli/internal/errors"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set once the error has been reported to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrFieldNotFound), errors.Is(err, oerrors.ErrValueNotFound):
		return ExitPlaceholderError
	case errors.Is(err, oerrors.ErrValidation):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, oerrors.ErrExists):
		return ExitConflict
	default:
		return ExitGeneralError
	}
}

// invalidFlag reports a flag value the command cannot use.
func invalidFlag(name, value, hint string) error {
	return &oerrors.DetailError{
		Type:    "validation failed",
		Message: fmt.Sprintf("invalid value %q for --%s", value, name),
		Field:   name,
		Hint:    hint,
		Cause:   oerrors.ErrValidation,
	}
}
