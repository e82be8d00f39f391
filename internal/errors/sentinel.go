package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a malformed content configuration or field definition.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a schema entry, content file, or config file was not found.
	ErrNotFound = errors.New("not found")

	// ErrFieldNotFound indicates a filename placeholder references a field
	// that the schema does not declare.
	ErrFieldNotFound = errors.New("field not found in schema")

	// ErrValueNotFound indicates a filename placeholder references a declared
	// field that has no value in the model.
	ErrValueNotFound = errors.New("value not found in model")

	// ErrExists indicates the target of a write already exists.
	ErrExists = errors.New("already exists")
)
