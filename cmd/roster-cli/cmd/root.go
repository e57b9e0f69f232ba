package cmd

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// appFs is where report files are written. Tests swap in a memory filesystem.
var appFs = afero.NewOsFs()

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "roster-cli",
	Short: "Roster CLI tool",
	Long: `roster-cli drives an in-process roster store and inspects the topics
its join and leave events are published on.

Available commands:
  demo      Replay the demo session and print its summary
  topics    List and inspect registered topics
  version   Print the version

Use "roster-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at the configured LOG_LEVEL instead of warn")
}
