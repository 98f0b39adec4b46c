package cli

import (
	"github.com/spf13/cobra"

	"github.com/genforge-labs/genforge/internal/branding"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Persistent flags shared by every command.
var (
	flagConfig  string
	flagModel   string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` turns a natural-language description into a complete project:
it asks a local model for a structure, generates every file concurrently,
then validates and repairs the result on disk.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Model name override")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
