package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/roster/cmd/roster-cli/internal/topics"
)

var getOutputFormat string

// topicsGetCmd represents the topics get command
var topicsGetCmd = &cobra.Command{
	Use:   "get <topic-name>",
	Short: "Get detailed information about a specific topic",
	Long: `Show the scope, module, description, pattern, example and metadata of one
topic. Typed roster topics list their payload fields in the metadata.

Examples:
  roster-cli topics get roster.user.joined
  roster-cli topics get server.lifecycle.started --format json`,
	Args: cobra.ExactArgs(1),
	RunE: topicsGetHandler,
}

func topicsGetHandler(cmd *cobra.Command, args []string) error {
	topic, err := topics.Manager().Lookup(args[0])
	if err != nil {
		return fmt.Errorf("%w (use 'roster-cli topics list' to see all topics)", err)
	}
	return topics.WriteDetails(cmd.OutOrStdout(), topic, getOutputFormat)
}

func init() {
	topicsCmd.AddCommand(topicsGetCmd)

	topicsGetCmd.Flags().StringVarP(&getOutputFormat, "format", "f", "table", "Output format (table, json)")
}
