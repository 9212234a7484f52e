package cmd

import (
	"os"

	"github.com/nikogura/checkin-scorer/pkg/config"
	"github.com/nikogura/checkin-scorer/pkg/history"
	"github.com/nikogura/checkin-scorer/pkg/logging"
	"github.com/nikogura/checkin-scorer/pkg/tiers"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "checkin-scorer",
	Short: "Score client check-ins and build coach reviews",
	Long: `checkin-scorer scores weighted yes/no questionnaires against a client's tier
and aggregates check-in responses into a training, nutrition and mindset review.

Check-ins can be scored straight from files or recorded in a local history
database so that reviews always read the client's latest submission.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.checkin-scorer/config.yaml)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// setup loads configuration and builds the logger every command shares.
func setup() (cfg config.Config, logger *logging.Logger, err error) {
	// Load configuration
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, logger, err
	}

	logger, err = logging.New(cfg.LogMode, getVerbose())
	if err != nil {
		err = errors.Wrap(err, "failed to create logger")
		return cfg, logger, err
	}

	logger.Debug("configuration loaded",
		"config_file", getConfigFile(),
		"default_tier", cfg.DefaultTier,
		"database_path", cfg.DatabasePath,
	)

	return cfg, logger, err
}

// openStore opens the history database named in the config.
func openStore(cfg config.Config, logger *logging.Logger) (store *history.Store, err error) {
	store, err = history.Open(cfg.DatabasePath)
	if err != nil {
		err = errors.Wrap(err, "failed to open history database")
		return store, err
	}
	logger.Debug("history database opened", "path", cfg.DatabasePath)
	return store, err
}

// resolveTier picks the flag value over the configured default and logs when an unknown id falls back.
func resolveTier(flagValue string, cfg config.Config, logger *logging.Logger) (tier tiers.Tier) {
	id := flagValue
	if id == "" {
		id = cfg.DefaultTier
	}

	tier = cfg.Tier(id)
	if tier.ID != id {
		logger.Warn("unknown tier, using default", "requested", id, "tier", tier.ID)
	}

	return tier
}

// getFormat returns the flag value or the configured default.
func getFormat(flagValue, configValue string) (format string) {
	format = flagValue
	if format == "" {
		format = configValue
	}
	return format
}
