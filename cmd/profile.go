package cmd

import (
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage registry credential profiles",
	Long: `Manage registry credential profiles for supergraph.

Each profile stores a registry API key and, optionally, the registry
endpoint it belongs to. Keys are kept in the local profile store with
owner-only file permissions.

Key lookup order for commands that talk to the registry:
  1. --key flag
  2. SUPERGRAPH_KEY environment variable
  3. --profile flag
  4. the active profile
  5. the profile named "default"

Available Commands:
  add          Create or replace a profile
  list         List all profiles
  use          Set the active profile
  show         Show profile information
  remove       Delete a profile

Examples:
  supergraph profile add default
  supergraph profile list
  supergraph profile use staging
  supergraph profile remove old-profile`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand provided, show help
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
