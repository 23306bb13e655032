// Package exitcode defines the process exit codes for the CLI.
package exitcode

const (
	// Success indicates normal completion.
	Success = 0

	// UserError indicates bad arguments or an unknown command/flag.
	UserError = 1

	// AuthError indicates a token acquisition or credential failure.
	AuthError = 2

	// BackendError indicates a Graph API, network, or filesystem failure.
	BackendError = 3
)
