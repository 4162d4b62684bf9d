package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nanopore-tools/h5audit/internal/config"
	"github.com/nanopore-tools/h5audit/internal/logging"
)

var (
	cfgFile      string
	verbose      bool
	showValues   bool
	indent       string
	repeatPrefix string
	templatePath string
)

// rootCmd analyzes the dump reports given as arguments.
var rootCmd = &cobra.Command{
	Use:   "h5audit [flags] <dump>...",
	Short: "Report which FAST5 fields are constant or variable across files",
	Long: `h5audit compares h5dump reports of FAST5 files from the same experiment
and prints, in the files' own group hierarchy, which attributes and datasets
hold the same value in every file (CONSTANT) and which differ (VARIABLE).

The hierarchy is taken from the first report. Per-read groups named read_*
are recorded once. Leaves that never show a scalar value are left out.

Reports may be plain text, gzip or zstd compressed; "-" reads standard input:

  h5audit -c <(h5dump a.fast5) <(h5dump b.fast5)
  h5audit dumps/*.txt.gz`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true, // Don't print usage on errors unrelated to flags
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger := logging.New(cmd.ErrOrStderr(), IsVerbose())
		return runAnalysis(cmd.OutOrStdout(), cmd.InOrStdin(), logger, cfg, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&showValues, "show-values", "c", false, "show the value of each constant field")
	flags.StringVar(&indent, "indent", "", "indentation per hierarchy level (default: from config)")
	flags.StringVar(&repeatPrefix, "repeat-prefix", "", "group name prefix recorded only once (default: from config)")
	flags.StringVar(&templatePath, "template", "", "report template file (default: built-in)")
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// loadConfig reads the config file and applies command-line overrides.
// Only an explicitly named config file is required to exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg, err := config.Load(cfgFile, flags.Changed("config"))
	if err != nil {
		return nil, err
	}

	if flags.Changed("show-values") {
		cfg.ShowValues = showValues
	}
	if flags.Changed("indent") {
		cfg.Indent = indent
	}
	if flags.Changed("repeat-prefix") {
		cfg.RepeatPrefix = repeatPrefix
	}
	if flags.Changed("template") {
		cfg.Template = templatePath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}
