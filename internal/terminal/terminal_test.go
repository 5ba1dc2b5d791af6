package terminal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearColorEnv unsets the env vars SupportsColor consults so each test
// starts from a known state. The t.Setenv call registers the restore; the
// Unsetenv after it actually clears the variable.
func clearColorEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CLICOLOR_FORCE", "NO_COLOR", "TERM", "CI"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestSupportsColor_ForceColorOption(t *testing.T) {
	clearColorEnv(t)
	c := NewCapabilities(Options{ForceColor: true})
	assert.True(t, c.SupportsColor())
}

func TestSupportsColor_DisableColorOption(t *testing.T) {
	clearColorEnv(t)
	t.Setenv("CLICOLOR_FORCE", "1")
	c := NewCapabilities(Options{DisableColor: true})
	assert.False(t, c.SupportsColor())
}

func TestSupportsColor_ForceColorWinsOverNoColorEnv(t *testing.T) {
	clearColorEnv(t)
	t.Setenv("NO_COLOR", "1")
	c := NewCapabilities(Options{ForceColor: true})
	assert.True(t, c.SupportsColor())
}

func TestSupportsColor_CLIColorForce(t *testing.T) {
	clearColorEnv(t)
	t.Setenv("CLICOLOR_FORCE", "1")
	c := NewCapabilities(Options{})
	assert.True(t, c.SupportsColor())
}

func TestSupportsColor_CLIColorForceFalsy(t *testing.T) {
	clearColorEnv(t)
	t.Setenv("CLICOLOR_FORCE", "0")
	// CLICOLOR_FORCE=0 is not a force; in a test run stdout is not a
	// TTY, so detection falls through to false.
	c := NewCapabilities(Options{})
	assert.False(t, c.SupportsColor())
}

func TestSupportsColor_NoColorEnvDisables(t *testing.T) {
	clearColorEnv(t)
	t.Setenv("NO_COLOR", "") // any setting counts, even empty
	c := NewCapabilities(Options{})
	assert.False(t, c.SupportsColor())
}

func TestIsInteractive_CIEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	c := NewCapabilities(Options{})
	assert.False(t, c.IsInteractive())
}

func TestIsInteractive_CIFalseIsNotCI(t *testing.T) {
	t.Setenv("CI", "false")
	c := &DefaultCapabilities{}
	// CI=false must not mark the environment as CI; interactivity then
	// depends solely on TTY detection.
	assert.False(t, c.isCIEnvironment())
}

func TestIsInteractive_OtherCIVariables(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "true")
	c := &DefaultCapabilities{}
	assert.True(t, c.isCIEnvironment())
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "1", want: true},
		{value: "true", want: true},
		{value: "yes", want: true},
		{value: " TRUE ", want: true},
		{value: "0", want: false},
		{value: "false", want: false},
		{value: "no", want: false},
		{value: "anything-else", want: true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isTruthy(tt.value), "value %q", tt.value)
	}
}
