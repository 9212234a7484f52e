package cmd

import (
	"github.com/nikogura/checkin-scorer/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Create a config file holding the default settings. An existing file is never
overwritten.

Every setting can also be overridden with a CHECKIN_SCORER_ environment variable,
e.g. CHECKIN_SCORER_DEFAULT_TIER=advanced.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	var path string
	path, err = config.InitConfig(getConfigFile())
	if err != nil {
		return err
	}

	cmd.Printf("Created config file: %s\n", path)
	return err
}
