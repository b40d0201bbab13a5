// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols used for alerts and workflow results.
const (
	// Success marks a completed operation, such as a saved cart.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks a result the user should notice, such as a local
	// download after the backend failed.
	Warning = "!"

	// Info marks informational messages.
	Info = "i"

	// Unknown marks an unrecognized state.
	Unknown = "?"
)
