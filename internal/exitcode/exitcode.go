// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, bad filter).
	UserError = 1

	// StorageError indicates the local task/theme storage could not be read or written.
	StorageError = 2

	// BackendError indicates a remote API or network error.
	BackendError = 3
)
