package cmd

import (
	"github.com/spf13/cobra"
)

// topicsCmd represents the topics command
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Explore the topics roster events are published on",
	Long: `The topics command lists and inspects the topics registered by the roster
service. Module topics carry roster join and leave events; framework topics
carry server lifecycle events.

Available subcommands:
  list      List all registered topics with optional filtering
  get       Get detailed information about a specific topic
  validate  Check a topic name against the naming rules

Examples:
  roster-cli topics list
  roster-cli topics list --module roster --format json
  roster-cli topics get roster.user.joined
  roster-cli topics validate roster.user.renamed`,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
