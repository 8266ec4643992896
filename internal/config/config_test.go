package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 200, cfg.LevelTicks())
	assert.InDelta(t, 0.72, cfg.JumpPeak(), 1e-12)
}

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	var fromYAML Config
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &fromYAML))
	assert.Equal(t, Default(), fromYAML)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cfg := Default()
	cfg.Difficulty.SpawnIntervalFloor = cfg.Difficulty.SpawnIntervalOriginal
	cfg.Field.Lanes = 1
	cfg.Obstacles.Side = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spawn_interval_original")
	assert.Contains(t, err.Error(), "field.lanes")
	assert.Contains(t, err.Error(), "obstacles.side")
}

func TestFingerprint(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)

	b.Difficulty.StepMax = 0.2
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("simulation:\n  tick_rate: 60\nobstacles:\n  side: 0.3\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Simulation.TickRate)
	assert.Equal(t, 0.3, cfg.Obstacles.Side)
	// Untouched keys keep their defaults.
	assert.Equal(t, 7, cfg.Field.Lanes)
	assert.Equal(t, 5, cfg.Difficulty.SpawnIntervalOriginal)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("field:\n  lanes: 1\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
}

func TestLoadSearchPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", LocalConfigFile), []byte("field:\n  lanes: 9\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Field.Lanes)

	userDir := filepath.Join(home, ".cuberunner")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, UserConfigFile), []byte("field:\n  lanes: 5\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Field.Lanes)
}
