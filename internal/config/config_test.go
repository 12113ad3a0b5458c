package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
engine:
  dir: /opt/qalculate
  timeout: 2s
launcher:
  keyword: qalc
  score: 150
server:
  port: 9090
log:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "qalcrun.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "/opt/qalculate", cfg.Engine.Dir)
	assert.Equal(t, 2*time.Second, cfg.Engine.Timeout.Duration)
	assert.Equal(t, "qalc", cfg.Launcher.Keyword)
	assert.Equal(t, 150, cfg.Launcher.Score)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	assert.Empty(t, cfg.Engine.Dir)
	assert.Equal(t, 5*time.Second, cfg.Engine.Timeout.Duration)
	assert.Equal(t, "=", cfg.Launcher.Keyword)
	assert.Equal(t, 300, cfg.Launcher.Score)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("QALC_HOME", "/home/me/qalculate")

	cfg, err := Load(writeConfig(t, "engine:\n  dir: ${QALC_HOME}/bin\n"))
	require.NoError(t, err)
	assert.Equal(t, "/home/me/qalculate/bin", cfg.Engine.Dir)
}

func TestLoad_EmptyKeywordDisablesExplicit(t *testing.T) {
	cfg, err := Load(writeConfig(t, "launcher:\n  keyword: \"\"\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Launcher.Keyword)

	cfg, err = Load(writeConfig(t, "launcher:\n  score: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, "=", cfg.Launcher.Keyword, "absent key keeps the default")
}

func TestLoad_PortOutOfRange(t *testing.T) {
	for _, port := range []string{"-1", "65536"} {
		_, err := Load(writeConfig(t, "server:\n  port: "+port+"\n"))
		require.Error(t, err, port)
		assert.Contains(t, err.Error(), "server.port must be between 1 and 65535", port)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	_, err := Load(writeConfig(t, "engine:\n  timeout: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "engine: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_ValidationErrorsAreJoined(t *testing.T) {
	yaml := `
engine:
  timeout: -1s
launcher:
  keyword: "two words"
  score: -5
server:
  port: 70000
log:
  level: loud
`
	_, err := Load(writeConfig(t, yaml))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "engine.timeout")
	assert.Contains(t, err.Error(), "launcher.keyword")
	assert.Contains(t, err.Error(), "launcher.score")
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "log.level")
}

func TestLoad_UnreadableFile(t *testing.T) {
	_, err := Load(t.TempDir()) // a directory
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "engine:\n  dir: /old\n")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, logger, func(cfg *Config) {
			select {
			case changes <- cfg:
			default:
			}
		})
	}()

	// Keep rewriting until the watcher is registered and reports the change.
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-changes:
			if cfg.Engine.Dir != "/new" {
				continue
			}
			cancel()
			require.NoError(t, <-done)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("engine:\n  dir: /new\n"), 0o644))
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatch_SkipsInvalidConfig(t *testing.T) {
	path := writeConfig(t, "engine:\n  dir: /old\n")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	called := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, logger, func(*Config) {
			select {
			case called <- struct{}{}:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  timeout: soon\n"), 0o644))

	require.NoError(t, <-done)
	assert.Empty(t, called)
}
