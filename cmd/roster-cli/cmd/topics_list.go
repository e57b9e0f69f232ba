package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/nfrund/roster/cmd/roster-cli/internal/topics"
	"github.com/nfrund/roster/internal/topicmgr"
)

var (
	listOutputFormat string
	listModuleFilter string
	listScopeFilter  string
)

// topicsListCmd represents the topics list command
var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered topics",
	Long: `List every registered topic in table or JSON format.

Examples:
  roster-cli topics list                       # all topics, table format
  roster-cli topics list --format json         # all topics, JSON
  roster-cli topics list --module roster       # roster topics only
  roster-cli topics list --scope framework     # server lifecycle topics only`,
	Args: cobra.NoArgs,
	RunE: topicsListHandler,
}

func topicsListHandler(cmd *cobra.Command, args []string) error {
	if listOutputFormat != "table" && listOutputFormat != "json" {
		return fmt.Errorf("unsupported output format %q, use table or json", listOutputFormat)
	}

	manager := topics.Manager()
	topicList := manager.List()

	var filters []string
	if listModuleFilter != "" {
		topicList = manager.ListByModule(listModuleFilter)
		filters = append(filters, fmt.Sprintf("module '%s'", listModuleFilter))
	}
	if listScopeFilter != "" {
		scope := topicmgr.ParseScope(strings.ToLower(listScopeFilter))
		if scope == "" {
			return fmt.Errorf("invalid scope %q, valid scopes: framework, module", listScopeFilter)
		}
		topicList = lo.Filter(topicList, func(t topicmgr.Topic, _ int) bool {
			return t.Scope() == scope
		})
		filters = append(filters, fmt.Sprintf("scope '%s'", listScopeFilter))
	}

	out := cmd.OutOrStdout()
	if listOutputFormat == "json" {
		return topics.WriteJSON(out, topicList)
	}

	if len(topicList) == 0 {
		message := "No topics found"
		if len(filters) > 0 {
			message += " matching: " + strings.Join(filters, ", ")
		}
		fmt.Fprintln(out, message)
		return nil
	}
	if len(filters) > 0 {
		fmt.Fprintf(out, "Topics for %s:\n\n", strings.Join(filters, ", "))
	}
	return topics.WriteTable(out, topicList)
}

func init() {
	topicsCmd.AddCommand(topicsListCmd)

	topicsListCmd.Flags().StringVarP(&listOutputFormat, "format", "f", "table", "Output format (table, json)")
	topicsListCmd.Flags().StringVarP(&listModuleFilter, "module", "m", "", "Filter topics by module name")
	topicsListCmd.Flags().StringVarP(&listScopeFilter, "scope", "s", "", "Filter topics by scope (framework, module)")
}
