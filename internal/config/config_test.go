package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 30000, cfg.Clock.TickRateMS)
	assert.Equal(t, 4999.0, cfg.Economy.StartingCurrency)
	assert.Equal(t, 0.05, cfg.Economy.BaseResourceRate)
	assert.Equal(t, 3, cfg.Shop.Slots)
	assert.Equal(t, 4000, cfg.Shop.RestockDelayMS)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
version: "1"
clock:
  tick_rate_ms: 1000
economy:
  starting_currency: 100
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, 1000, cfg.Clock.TickRateMS)
	assert.Equal(t, 100.0, cfg.Economy.StartingCurrency)
	// Unset fields fall back to defaults.
	assert.Equal(t, 0.05, cfg.Economy.BaseResourceRate)
	assert.Equal(t, 3, cfg.Shop.Slots)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("clock: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
