package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/SmilesKit/internal/config"
)

func TestDefaults_AreValid(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Chem.MaxRingSize)
	assert.Equal(t, 0, cfg.Chem.MaxAtoms)
	assert.False(t, cfg.Cache.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad port", func(c *config.Config) { c.Server.Port = 70000 }},
		{"ring cap too small", func(c *config.Config) { c.Chem.MaxRingSize = 2 }},
		{"negative atom guard", func(c *config.Config) { c.Chem.MaxAtoms = -1 }},
		{"cache without addr", func(c *config.Config) { c.Cache.Enabled = true; c.Cache.Addr = "" }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Defaults()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Chem.MaxRingSize)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
server:
  port: 9090
chem:
  max_ring_size: 8
  max_atoms: 500
log:
  level: debug
  format: console
`)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Chem.MaxRingSize)
	assert.Equal(t, 500, cfg.Chem.MaxAtoms)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SMILESKIT_CHEM_MAX_ATOMS", "123")
	t.Setenv("SMILESKIT_SERVER_PORT", "9191")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 123, cfg.Chem.MaxAtoms)
	assert.Equal(t, 9191, cfg.Server.Port)
}

func TestLoad_InvalidFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chem:\n  max_ring_size: 1\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
