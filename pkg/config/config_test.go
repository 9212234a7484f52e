package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikogura/checkin-scorer/pkg/tiers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	data := []byte(`default_tier: advanced
database_path: /tmp/scorer/history.db
format: markdown
log_mode: prod
history_limit: 4
`)

	err := os.WriteFile(configPath, data, 0600)
	require.NoError(t, err, "Failed to write test config")

	// Test loading the config.
	cfg, err := Load(configPath)
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, "advanced", cfg.DefaultTier)
	assert.Equal(t, "/tmp/scorer/history.db", cfg.DatabasePath)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Equal(t, 4, cfg.HistoryLimit)
	assert.Nil(t, cfg.CustomThresholds)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("default_tier: professional\n"), 0600)
	require.NoError(t, err, "Failed to write test config")

	cfg, err := Load(configPath)
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, "professional", cfg.DefaultTier)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, filepath.Join(tmpDir, ".checkin-scorer", "history.db"), cfg.DatabasePath)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err, "Expected defaults when no config file exists")

	assert.Equal(t, "beginner", cfg.DefaultTier)
	assert.Equal(t, "dev", cfg.LogMode)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CHECKIN_SCORER_DEFAULT_TIER", "intermediate")
	t.Setenv("CHECKIN_SCORER_HISTORY_LIMIT", "25")

	cfg, err := Load("")
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, "intermediate", cfg.DefaultTier)
	assert.Equal(t, 25, cfg.HistoryLimit)
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("default_tier: elite\n"), 0600)
	require.NoError(t, err, "Failed to write test config")

	_, err = Load(configPath)
	assert.Error(t, err, "Expected validation error for unknown tier")
}

func TestLoadCustomThresholds(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	configPath := filepath.Join(tmpDir, "config.yaml")

	data := []byte(`default_tier: custom
custom_thresholds:
  red: 0.35
  orange: 0.65
`)
	require.NoError(t, os.WriteFile(configPath, data, 0600))

	cfg, err := Load(configPath)
	require.NoError(t, err, "Failed to load config")
	require.NotNil(t, cfg.CustomThresholds)
	assert.Equal(t, tiers.Thresholds{Red: 0.35, Orange: 0.65}, *cfg.CustomThresholds)

	assert.Equal(t, tiers.Thresholds{Red: 0.35, Orange: 0.65}, cfg.Tier(tiers.CustomID).Thresholds)
	assert.Equal(t, tiers.Thresholds{Red: 0.50, Orange: 0.70}, cfg.Tier("").Thresholds)
}

func TestLoadInvalidCustomThresholds(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	configPath := filepath.Join(tmpDir, "config.yaml")

	data := []byte(`custom_thresholds:
  red: 0.8
  orange: 0.6
`)
	require.NoError(t, os.WriteFile(configPath, data, 0600))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid custom_thresholds")
}

func TestTierWithoutOverride(t *testing.T) {
	cfg := Config{}

	assert.Equal(t, tiers.Resolve(tiers.CustomID), cfg.Tier(tiers.CustomID))
	assert.Equal(t, tiers.Default(), cfg.Tier("elite"))
}

func TestValidate(t *testing.T) {
	valid := Config{
		DefaultTier:  "beginner",
		DatabasePath: "history.db",
		Format:       "console",
		LogMode:      "dev",
		HistoryLimit: 10,
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "custom tier",
			mutate:    func(c *Config) { c.DefaultTier = "custom" },
			wantError: false,
		},
		{
			name:      "unknown tier",
			mutate:    func(c *Config) { c.DefaultTier = "elite" },
			wantError: true,
		},
		{
			name:      "missing database path",
			mutate:    func(c *Config) { c.DatabasePath = "" },
			wantError: true,
		},
		{
			name:      "unknown format",
			mutate:    func(c *Config) { c.Format = "pdf" },
			wantError: true,
		},
		{
			name:      "unknown log mode",
			mutate:    func(c *Config) { c.LogMode = "loud" },
			wantError: true,
		},
		{
			name:      "zero history limit",
			mutate:    func(c *Config) { c.HistoryLimit = 0 },
			wantError: true,
		},
		{
			name:      "custom thresholds",
			mutate:    func(c *Config) { c.CustomThresholds = &tiers.Thresholds{Red: 0.2, Orange: 0.5} },
			wantError: false,
		},
		{
			name:      "custom red above orange",
			mutate:    func(c *Config) { c.CustomThresholds = &tiers.Thresholds{Red: 0.6, Orange: 0.5} },
			wantError: true,
		},
		{
			name:      "custom threshold above one",
			mutate:    func(c *Config) { c.CustomThresholds = &tiers.Thresholds{Red: 0.5, Orange: 1.5} },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	path, err := InitConfig(configPath)
	require.NoError(t, err, "Failed to init config")
	assert.Equal(t, configPath, path)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "custom_thresholds")

	cfg, err := Load(configPath)
	require.NoError(t, err, "Failed to load generated config")
	assert.Equal(t, "beginner", cfg.DefaultTier)

	// A second init must not overwrite.
	_, err = InitConfig(configPath)
	assert.Error(t, err, "Expected error when config already exists")
}
