// Package cmdcommon provides common functionality for command-line tools.
package cmdcommon

// Exit codes. Stable for scripting: build pipelines key off these values.
const (
	// ExitOK means the audit ran and no error-severity rule fired.
	ExitOK = 0

	// ExitViolation means the audit ran and at least one error-severity
	// rule fired. Warning and info firings alone do not produce this.
	ExitViolation = 1

	// ExitFailure means the run could not complete: bad arguments, an
	// invalid rule file, a malformed binary, or an unresolved dependency.
	ExitFailure = 2
)

// EnvLibPath names the environment variable holding additional ":"-separated
// library search directories, consulted after --libpath entries.
const EnvLibPath = "SYMAUDIT_LIBPATH"
