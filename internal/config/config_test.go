package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/usr/bin/maxima", cfg.Maxima.Command)
	assert.Equal(t, []string{"-b"}, cfg.Maxima.Args)
	assert.Equal(t, 30*time.Second, cfg.Maxima.Timeout)
	assert.Equal(t, 32, cfg.Algebra.Blades)
	assert.Empty(t, cfg.Cache.Path)
	assert.False(t, cfg.Symbols.Strict)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gappc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
maxima:
  command: /opt/maxima/bin/maxima
  timeout: 90s
  temp_dir: /var/tmp
cache:
  path: .gapp/cache.db
algebra:
  name: e3ga
  blades: 8
symbols:
  strict: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/maxima/bin/maxima", cfg.Maxima.Command)
	assert.Equal(t, []string{"-b"}, cfg.Maxima.Args, "unset keys keep defaults")
	assert.Equal(t, 90*time.Second, cfg.Maxima.Timeout)
	assert.Equal(t, "/var/tmp", cfg.Maxima.TempDir)
	assert.Equal(t, 4, cfg.Maxima.Concurrency)
	assert.Equal(t, ".gapp/cache.db", cfg.Cache.Path)
	assert.Equal(t, AlgebraConfig{Name: "e3ga", Blades: 8}, cfg.Algebra)
	assert.True(t, cfg.Symbols.Strict)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("maxima:\n  comand: maxima\n"))
	assert.Error(t, err)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero timeout", "maxima:\n  timeout: 0s\n", "maxima.timeout"},
		{"negative blades", "algebra:\n  blades: -1\n", "algebra.blades"},
		{"zero concurrency", "maxima:\n  concurrency: 0\n", "maxima.concurrency"},
		{"empty command", "maxima:\n  command: \"\"\n", "maxima.command"},
		{"bad duration", "maxima:\n  timeout: soon\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Cache.Path = "cache.db"

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 30s")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
