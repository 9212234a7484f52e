package cmd

import (
	"github.com/nikogura/checkin-scorer/pkg/config"
	"github.com/nikogura/checkin-scorer/pkg/logging"
	"github.com/nikogura/checkin-scorer/pkg/renderer"
	"github.com/nikogura/checkin-scorer/pkg/tiers"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var tiersFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the scoring tiers and their thresholds",
	Long: `List every scoring tier with its red and orange thresholds.

Scores below the red threshold are red, scores below the orange threshold are
orange, and everything else is green.

Example:
  checkin-scorer tiers
  checkin-scorer tiers --format json`,
	Args: cobra.NoArgs,
	RunE: runTiers,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(tiersCmd)
	tiersCmd.Flags().StringVar(&tiersFormat, "format", "", "Output format: console, markdown or json (default from config)")
}

func runTiers(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	var logger *logging.Logger
	cfg, logger, err = setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	list := tiers.List()
	for i := range list {
		list[i] = cfg.Tier(list[i].ID)
	}
	logger.Debug("listing tiers", "tiers", len(list), "custom_override", cfg.CustomThresholds != nil)

	err = renderer.RenderTiers(cmd.OutOrStdout(), list, getFormat(tiersFormat, cfg.Format))
	return err
}
