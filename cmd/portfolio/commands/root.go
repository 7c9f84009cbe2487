package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/logging"
)

var (
	version string
	commit  string
	date    string

	configPath  string
	catalogPath string
	verbose     bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site and landing-page generator",
	Long: `portfolio serves the personal site: the home page, projects, blog and
admin dashboard, plus programmatic landing pages generated from the skill,
location, industry, role and use-case catalogs.

Configuration comes from defaults, an optional YAML file (--config), .env
and the process environment, in increasing order of precedence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logging.Options{Verbose: verbose})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command. Cobra's own error and usage output is
// silenced; commands report failures through the printer package.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file (defaults to the embedded catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
