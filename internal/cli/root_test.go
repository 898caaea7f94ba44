package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/streamtable/internal/cli"
	"github.com/rshade/streamtable/internal/config"
)

func noEnv(string) (string, bool) { return "", false }

func TestNewRootCmd(t *testing.T) {
	root := cli.NewRootCmdWithEnv("1.2.3", noEnv)
	assert.Equal(t, "streamtable", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	for _, name := range []string{"debug", "config", "project-dir"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing --%s", name)
	}

	table, _, err := root.Find([]string{"table"})
	require.NoError(t, err)
	assert.Equal(t, "table", table.Name())
	for _, name := range []string{
		"start-number", "page-size", "input", "format", "style", "width", "group-digits", "precision",
	} {
		assert.NotNil(t, table.Flags().Lookup(name), "missing --%s", name)
	}
}

func TestRootCmd_Help(t *testing.T) {
	root := cli.NewRootCmdWithEnv("test", noEnv)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "streamtable table --input events.ndjson")
}

func TestRootCmd_DebugLogging(t *testing.T) {
	_, errOut, err := execTable(t, tableRun{stdin: ndjson(1)}, "--debug")
	require.NoError(t, err)
	assert.Contains(t, errOut, "command started")
	assert.Contains(t, errOut, "window processed")
}

func TestRootCmd_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "st.log")
	run := tableRun{
		stdin: ndjson(1),
		env: map[string]string{
			config.EnvLogFile:  logPath,
			config.EnvLogLevel: "info",
		},
	}

	_, errOut, err := execTable(t, run)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Logging to "+logPath)
	assert.FileExists(t, logPath)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitOK, cli.ExitCode(nil))
	err := &cli.ExitError{Code: cli.ExitUsage, Err: assert.AnError}
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, assert.AnError.Error(), err.Error())
}
