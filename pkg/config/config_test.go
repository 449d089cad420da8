package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Codec)
	assert.Equal(t, 5*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, 64, cfg.OutboundQueueSize)
	assert.False(t, cfg.TLSEnabled())
}

func TestLoadPrecedence(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GHIST_PORT", "9000")
	t.Setenv("GHIST_CODEC", "msgpack")
	t.Setenv("GHIST_SEED", "42")

	cfg, err := Load([]string{"-codec", "flatbuffers", "-tick-interval", "10ms"})
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port, "env overrides default")
	assert.Equal(t, "flatbuffers", cfg.Codec, "flag overrides env")
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 10*time.Millisecond, cfg.TickInterval)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GHIST_LOG_LEVEL=debug\n"), 0o600))
	chdir(t, dir)
	t.Setenv("GHIST_LOG_LEVEL", "")
	os.Unsetenv("GHIST_LOG_LEVEL")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "bad port env", env: map[string]string{"GHIST_PORT": "http"}},
		{name: "bad duration env", env: map[string]string{"GHIST_TICK_INTERVAL": "fast"}},
		{name: "port out of range", args: []string{"-port", "70000"}},
		{name: "zero tick interval", args: []string{"-tick-interval", "0s"}},
		{name: "zero queue size", args: []string{"-outbound-queue-size", "0"}},
		{name: "cert without key", args: []string{"-tls-cert", "cert.pem"}},
		{name: "unknown flag", args: []string{"-verbose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}
