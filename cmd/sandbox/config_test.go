package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Canopy Sandbox", cfg.Title)
	assert.Equal(t, 1024, cfg.Width)
	assert.True(t, cfg.VSync)
}

func TestLoadConfigOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canopy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  title: Demo
  width: 800
  vsync: false
font:
  size: 24
grace_frames: 2
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Demo", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 640, cfg.Height, "unset fields keep their defaults")
	assert.False(t, cfg.VSync)
	assert.Equal(t, float32(24), cfg.FontSize)
	assert.Equal(t, "assets/fonts/default.ttf", cfg.FontPath)
	assert.Equal(t, uint64(2), cfg.GraceFrames)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canopy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [not a map"), 0o644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}
