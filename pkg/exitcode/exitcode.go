// Package exitcode provides public constants for external tools
// integrating with lintrun (CI scripts, wrappers, editors).
package exitcode

// Exit codes returned by the lintrun CLI.
// These constants allow callers to check exit codes symbolically
// rather than using magic numbers.
const (
	// Success indicates the analysis tool ran and reported no findings.
	Success = 0

	// LintFailure indicates the analysis tool exited non-zero.
	// Every non-zero tool status collapses to this single code; the
	// tool's own status is not passed through.
	LintFailure = 1

	// ConfigError indicates the run configuration is missing or invalid.
	ConfigError = 2

	// EnvError indicates an environment failure: the target directory
	// or virtualenv does not exist, or the tool could not be executed.
	EnvError = 3
)
