package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/roster/cmd/roster-cli/internal/topics"
)

// topicsValidateCmd represents the topics validate command
var topicsValidateCmd = &cobra.Command{
	Use:   "validate <topic-name>",
	Short: "Check a topic name against the naming rules",
	Long: `Check that a name is a well-formed topic name (lowercase, dot separated,
no reserved prefix) and report whether a topic with that name is registered.

Examples:
  roster-cli topics validate roster.user.joined     # valid and registered
  roster-cli topics validate roster.user.renamed    # valid, not registered
  roster-cli topics validate Roster.User            # invalid name`,
	Args: cobra.ExactArgs(1),
	RunE: topicsValidateHandler,
}

func topicsValidateHandler(cmd *cobra.Command, args []string) error {
	name := args[0]
	manager := topics.Manager()
	out := cmd.OutOrStdout()

	if err := manager.ValidateTopicName(name); err != nil {
		return fmt.Errorf("topic name %q is invalid: %w", name, err)
	}

	topic, found := manager.Get(name)
	if !found {
		fmt.Fprintf(out, "Topic name '%s' is valid but not registered\n", name)
		return nil
	}

	module := topic.Module()
	if module == "" {
		module = "(framework)"
	}
	fmt.Fprintf(out, "Topic '%s' is valid and registered\n", topic.Name())
	fmt.Fprintf(out, "   Scope: %s\n", topic.Scope())
	fmt.Fprintf(out, "   Module: %s\n", module)
	return nil
}

func init() {
	topicsCmd.AddCommand(topicsValidateCmd)
}
