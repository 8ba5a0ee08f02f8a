package cmd

import (
	"github.com/spf13/cobra"
)

var subgraphCmd = &cobra.Command{
	Use:   "subgraph",
	Short: "Work with subgraphs in the schema registry",
	Long: `Work with subgraphs in the schema registry.

Available Commands:
  publish      Publish a subgraph schema

Examples:
  supergraph subgraph publish my-graph@current --name products --schema products.graphql`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(subgraphCmd)
}
