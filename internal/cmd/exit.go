package cmd

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates a malformed content configuration,
	// field definition or flag value.
	ExitValidationError = 2

	// ExitPermissionDenied indicates insufficient filesystem permissions.
	ExitPermissionDenied = 4

	// ExitNotFound indicates a schema entry, content file or config file was not found.
	ExitNotFound = 5

	// ExitConflict indicates a write target already exists.
	ExitConflict = 6

	// ExitPlaceholderError indicates a filename placeholder could not be resolved.
	ExitPlaceholderError = 7
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	case ExitConflict:
		return "Conflict"
	case ExitPlaceholderError:
		return "Placeholder Error"
	default:
		return "Unknown"
	}
}
