package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandExecutor_Run(t *testing.T) {
	executor := NewCommandExecutor()

	t.Run("should execute a simple command successfully", func(t *testing.T) {
		result, err := executor.Run("echo", "hello world")
		require.NoError(t, err)
		assert.Equal(t, "hello world\n", result.Stdout)
		assert.Empty(t, result.Stderr)
		assert.Equal(t, 0, result.ExitCode)
	})

	t.Run("should capture stderr", func(t *testing.T) {
		result, err := executor.Run("sh", "-c", "echo 'oops' 1>&2")
		require.NoError(t, err)
		assert.Empty(t, result.Stdout)
		assert.Equal(t, "oops\n", result.Stderr)
		assert.Equal(t, 0, result.ExitCode)
	})

	t.Run("should handle non-zero exit codes", func(t *testing.T) {
		result, err := executor.Run("sh", "-c", "exit 42")
		require.NoError(t, err) // We don't expect an error from Run itself
		assert.Equal(t, 42, result.ExitCode)
	})

	t.Run("should return error for non-existent command", func(t *testing.T) {
		_, err := executor.Run("this_command_does_not_exist_12345")
		assert.Error(t, err)
	})
}

func TestCommandExecutor_RunShell(t *testing.T) {
	executor := NewCommandExecutor()

	t.Run("should run a full command line through the shell", func(t *testing.T) {
		result, err := executor.RunShell("echo one && echo two")
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo\n", result.Stdout)
		assert.Equal(t, 0, result.ExitCode)
	})

	t.Run("should report the exit code of the command line", func(t *testing.T) {
		result, err := executor.RunShell("false")
		require.NoError(t, err)
		assert.Equal(t, 1, result.ExitCode)
	})
}
