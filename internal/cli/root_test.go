package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "rotate <input-file>", cmd.Use)
	assert.Equal(t, "rotate", cmd.Name())
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	subCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)
	require.NotNil(t, subCmd)
	assert.Equal(t, "history", subCmd.Name())
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "csv", formatFlag.DefValue)

	for _, name := range []string{"db", "config"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestRootArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing", nil},
		{"extra", []string{"a.csv", "b.csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), "usage: rotate <input-file>")
			assert.Empty(t, stdout)
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	input := writeFile(t, "in.csv", sampleInput)

	stdout, _, err := execute(t, []string{"--format", "xml", input})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
	assert.Empty(t, stdout)
}

func TestConfigFile(t *testing.T) {
	input := writeFile(t, "in.csv", "id,json\n1,\"[1]\"\n")

	t.Run("file_values_apply", func(t *testing.T) {
		cfg := writeFile(t, "rotate.yaml", "format: json\n")
		stdout, _, err := execute(t, []string{"--config", cfg, input})
		require.NoError(t, err)
		assert.Equal(t, `{"id":"1","json":"[1]","is_valid":true}`+"\n", stdout)
	})

	t.Run("flags_override_file", func(t *testing.T) {
		cfg := writeFile(t, "rotate.yaml", "format: json\n")
		stdout, _, err := execute(t, []string{"--config", cfg, "--format", "csv", input})
		require.NoError(t, err)
		assert.Equal(t, "id,json,is_valid\n1,\"[1]\",true\n", stdout)
	})

	t.Run("database_from_file", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "runs.db")
		cfg := writeFile(t, "rotate.yaml", "database: "+db+"\n")
		_, _, err := execute(t, []string{"--config", cfg, input}, "run-1")
		require.NoError(t, err)

		stdout, _, err := execute(t, []string{"--db", db, "history", "--run", "run-1"})
		require.NoError(t, err)
		assert.Equal(t, "id,json,is_valid\n1,\"[1]\",true\n", stdout)
	})

	t.Run("unknown_key", func(t *testing.T) {
		cfg := writeFile(t, "rotate.yaml", "fromat: json\n")
		_, _, err := execute(t, []string{"--config", cfg, input})
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "failed to load config")
	})

	t.Run("missing_file", func(t *testing.T) {
		_, _, err := execute(t, []string{"--config", "/nonexistent/rotate.yaml", input})
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})
}
