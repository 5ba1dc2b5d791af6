// Package terminal provides helpers for detecting terminal capabilities and
// determining whether the current process should be treated as interactive
// or running in a CI/non-interactive environment. The report writer uses it
// to decide whether colored output is appropriate.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"TRAVIS",                 // Travis CI
	"CIRCLECI",               // Circle CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"GITLAB_CI",              // GitLab CI
	"APPVEYOR",               // AppVeyor
	"BUILDKITE",              // Buildkite
	"DRONE",                  // Drone CI
	"TF_BUILD",               // Azure DevOps
}

// Options contains command-line overrides for capability detection.
type Options struct {
	ForceColor   bool // Force color output regardless of environment
	DisableColor bool // Disable color output regardless of environment
}

// Capabilities reports what the attached terminal supports.
type Capabilities interface {
	IsInteractive() bool
	SupportsColor() bool
}

// DefaultCapabilities implements Capabilities using environment inspection
// and golang.org/x/term.
type DefaultCapabilities struct {
	options Options
}

// NewCapabilities creates a Capabilities instance with the given options.
func NewCapabilities(options Options) Capabilities {
	return &DefaultCapabilities{options: options}
}

// IsInteractive returns true when the process appears to be driven by a
// human at a terminal: not a CI environment, and stdout/stderr are TTYs.
func (c *DefaultCapabilities) IsInteractive() bool {
	if c.isCIEnvironment() {
		return false
	}
	return c.isTerminal()
}

// SupportsColor decides whether colored output should be produced, in
// priority order: command-line flags, CLICOLOR_FORCE, NO_COLOR, then
// interactivity plus the TERM variable.
func (c *DefaultCapabilities) SupportsColor() bool {
	if c.options.ForceColor {
		return true
	}
	if c.options.DisableColor {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && isTruthy(force) {
		return true
	}
	// NO_COLOR disables color when set at all, even to the empty string.
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if !c.IsInteractive() {
		return false
	}
	termEnv := os.Getenv("TERM")
	return termEnv != "" && termEnv != "dumb"
}

// isTerminal checks if stdout and stderr are connected to a terminal
func (c *DefaultCapabilities) isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// isCIEnvironment checks if the current environment is a CI/CD system
func (c *DefaultCapabilities) isCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		if value := os.Getenv(envVar); value != "" {
			// CI=false or CI=0 should not be considered a CI environment
			if envVar == "CI" {
				return isTruthy(value)
			}
			// For other CI variables, presence indicates CI environment
			return true
		}
	}
	return false
}

// isTruthy checks if an environment value should be considered "true".
func isTruthy(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	switch lower {
	case "0", "false", "no":
		return false
	default:
		return true
	}
}
