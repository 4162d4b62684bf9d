package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Validate and print the configuration that an analysis would use.

Settings are merged in this order, later ones winning:
  - built-in defaults
  - the config file (--config, default h5audit.yml)
  - environment variables H5AUDIT_SHOW_VALUES, H5AUDIT_INDENT,
    H5AUDIT_REPEAT_PREFIX, H5AUDIT_TEMPLATE (also read from .env)
  - command-line flags`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		out, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
