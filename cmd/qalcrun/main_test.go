package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahar-caura/qalcrun/internal/engine"
)

// fakeQalcScript answers "4" to 2+2 and nothing to anything else.
const fakeQalcScript = `#!/bin/sh
for last; do :; done
case "$last" in
  "2+2") echo 4 ;;
  "oops") echo "error: bad" ;;
esac
`

func installFakeQalc(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script engine")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, engine.Name), []byte(fakeQalcScript), 0o755))
	return dir
}

func writeTestConfig(t *testing.T, engineDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qalcrun.yaml")
	content := "engine:\n  dir: " + engineDir + "\n  timeout: 5s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := newRootCmd(logger, new(slog.LevelVar))

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestClassifyCmd(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "none.yaml")

	out, _, err := execRoot(t, "", "--config", cfg, "classify", "2+2")
	require.NoError(t, err)
	assert.Equal(t, "true\narithmetic\n", out)

	out, _, err = execRoot(t, "", "--config", cfg, "classify", "new", "york", "pizza")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestWhichCmd(t *testing.T) {
	dir := installFakeQalc(t)

	out, _, err := execRoot(t, "", "--config", writeTestConfig(t, dir), "which")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, engine.Name)+"\n", out)
}

func TestWhichCmd_NotFound(t *testing.T) {
	t.Setenv("PATH", "")

	_, _, err := execRoot(t, "", "--config", writeTestConfig(t, t.TempDir()), "which")
	assert.ErrorIs(t, err, engine.ErrEngineNotFound)
}

func TestQueryCmd_Ambient(t *testing.T) {
	cfg := writeTestConfig(t, installFakeQalc(t))

	out, _, err := execRoot(t, "", "--config", cfg, "query", "2+2")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	out, _, err = execRoot(t, "", "--config", cfg, "query", "hello", "world")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestQueryCmd_KeywordMakesExplicit(t *testing.T) {
	cfg := writeTestConfig(t, installFakeQalc(t))

	// "oops" is not math, so only an explicit query reaches the engine.
	out, _, err := execRoot(t, "", "--config", cfg, "query", "oops")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = execRoot(t, "", "--config", cfg, "query", "=", "oops")
	require.NoError(t, err)
	assert.Equal(t, "error: bad\n", out)

	out, _, err = execRoot(t, "", "--config", cfg, "query", "--explicit", "oops")
	require.NoError(t, err)
	assert.Equal(t, "error: bad\n", out)
}

func TestQueryCmd_NoEngine(t *testing.T) {
	t.Setenv("PATH", "")

	out, _, err := execRoot(t, "", "--config", writeTestConfig(t, t.TempDir()), "query", "--explicit", "2+2")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBatchCmd_KeepsInputOrder(t *testing.T) {
	cfg := writeTestConfig(t, installFakeQalc(t))
	stdin := "2+2\nhello world\n\n  3*3  \n2+2\n"

	out, _, err := execRoot(t, stdin, "--config", cfg, "batch", "--workers", "3")
	require.NoError(t, err)
	assert.Equal(t, "2+2\t4\nhello world\t\n3*3\t\n2+2\t4\n", out)
}

func TestBatchCmd_InvalidWorkers(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "none.yaml")

	_, _, err := execRoot(t, "", "--config", cfg, "batch", "--workers", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--workers")
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "none.yaml")

	_, _, err := execRoot(t, "", "--config", cfg, "--log-level", "chatty", "classify", "1+1")
	require.Error(t, err)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qalcrun.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o644))

	_, _, err := execRoot(t, "", "--config", path, "classify", "1+1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestCompletionCmd(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "none.yaml")

	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			out, _, err := execRoot(t, "", "--config", cfg, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "qalcrun")
		})
	}

	_, _, err := execRoot(t, "", "--config", cfg, "completion", "tcsh")
	assert.Error(t, err)
}

func TestQueryCmd_EmptyKeyword(t *testing.T) {
	engineDir := installFakeQalc(t)
	path := filepath.Join(t.TempDir(), "qalcrun.yaml")
	content := "engine:\n  dir: " + engineDir + "\nlauncher:\n  keyword: \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// With no keyword a leading "=" is ordinary text.
	out, _, err := execRoot(t, "", "--config", path, "query", "=", "oops")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = execRoot(t, "", "--config", path, "query", "--explicit", "oops")
	require.NoError(t, err)
	assert.Equal(t, "error: bad\n", out)
}
