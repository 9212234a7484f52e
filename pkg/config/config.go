package config

import (
	"os"
	"path/filepath"

	"github.com/nikogura/checkin-scorer/pkg/logging"
	"github.com/nikogura/checkin-scorer/pkg/renderer"
	"github.com/nikogura/checkin-scorer/pkg/tiers"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. CHECKIN_SCORER_DEFAULT_TIER.
const EnvPrefix = "CHECKIN_SCORER"

// DefaultHistoryLimit is how many stored check-ins a review reads when not configured.
const DefaultHistoryLimit = 10

// Config represents the application configuration.
type Config struct {
	DefaultTier  string `mapstructure:"default_tier" yaml:"default_tier"`
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`
	Format       string `mapstructure:"format" yaml:"format"`
	LogMode      string `mapstructure:"log_mode" yaml:"log_mode"`
	HistoryLimit int    `mapstructure:"history_limit" yaml:"history_limit"`

	// CustomThresholds replaces the Custom tier's thresholds when set.
	CustomThresholds *tiers.Thresholds `mapstructure:"custom_thresholds" yaml:"custom_thresholds,omitempty"`
}

// Dir returns the directory holding the config file and the default database.
func Dir() (dir string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return dir, err
	}
	dir = filepath.Join(homeDir, ".checkin-scorer")
	return dir, err
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() (path string, err error) {
	var dir string
	dir, err = Dir()
	if err != nil {
		return path, err
	}
	path = filepath.Join(dir, "config.yaml")
	return path, err
}

// Defaults returns the configuration used when nothing is set.
func Defaults() (cfg Config, err error) {
	var dir string
	dir, err = Dir()
	if err != nil {
		return cfg, err
	}

	cfg = Config{
		DefaultTier:  tiers.DefaultID,
		DatabasePath: filepath.Join(dir, "history.db"),
		Format:       renderer.FormatConsole,
		LogMode:      logging.ModeDevelopment,
		HistoryLimit: DefaultHistoryLimit,
	}
	return cfg, err
}

// Load reads configuration from file with environment variable overrides.
// An explicit configPath must exist; the default location is optional.
func Load(configPath string) (cfg Config, err error) {
	var defaults Config
	defaults, err = Defaults()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetDefault("default_tier", defaults.DefaultTier)
	v.SetDefault("database_path", defaults.DatabasePath)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("log_mode", defaults.LogMode)
	v.SetDefault("history_limit", defaults.HistoryLimit)

	// Determine config file location
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	// Read config file
	_, err = os.Stat(path)
	switch {
	case err == nil:
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		err = v.ReadInConfig()
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'checkin-scorer init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	err = v.Unmarshal(&cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to decode config")
		return cfg, err
	}

	// Validate required fields
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() (err error) {
	_, found := tiers.FindByID(c.DefaultTier)
	if !found {
		err = errors.Errorf("unknown default_tier %q", c.DefaultTier)
		return err
	}

	if c.CustomThresholds != nil {
		err = c.CustomThresholds.Validate()
		if err != nil {
			err = errors.Wrap(err, "invalid custom_thresholds")
			return err
		}
	}

	if c.DatabasePath == "" {
		err = errors.New("database_path is required in config")
		return err
	}

	if !renderer.ValidFormat(c.Format) {
		err = errors.Errorf("invalid format %q (expected one of %v)", c.Format, renderer.Formats())
		return err
	}

	if c.LogMode != logging.ModeDevelopment && c.LogMode != logging.ModeProduction {
		err = errors.Errorf("invalid log_mode %q (expected %s or %s)", c.LogMode, logging.ModeDevelopment, logging.ModeProduction)
		return err
	}

	if c.HistoryLimit < 1 {
		err = errors.New("history_limit must be at least 1")
		return err
	}

	return err
}

// Tier resolves id like tiers.Resolve and applies CustomThresholds to the Custom tier.
func (c *Config) Tier(id string) (tier tiers.Tier) {
	tier = tiers.Resolve(id)
	if tier.ID == tiers.CustomID && c.CustomThresholds != nil {
		tier.Thresholds = *c.CustomThresholds
	}
	return tier
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (path string, err error) {
	// Determine config file location
	path = configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return path, err
		}
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	var defaults Config
	defaults, err = Defaults()
	if err != nil {
		return path, err
	}

	// Write to file
	var data []byte
	data, err = yaml.Marshal(defaults)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	return path, err
}
