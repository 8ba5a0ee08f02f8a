package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/supergraph/internal/store"
	"github.com/spf13/cobra"
)

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active profile",
	Long: `Set a profile as the active profile.

The active profile's key is used when neither --key, --profile nor
SUPERGRAPH_KEY is given.

Examples:
  supergraph profile use staging
  supergraph profile use default`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileUse,
}

func init() {
	profileCmd.AddCommand(profileUseCmd)
}

func runProfileUse(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	st, err := openStore()
	if err != nil {
		return err
	}

	defer func() {
		_ = st.Close()
	}()

	// Get current active profile for comparison
	currentActive, _ := st.GetActiveProfile()

	if err := st.SetActiveProfile(name); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return fmt.Errorf("profile '%s' not found", name)
		}

		return fmt.Errorf("failed to set active profile: %w", err)
	}

	if currentActive != nil && currentActive.Name == name {
		_, _ = fmt.Fprintf(out, "Profile '%s' is already active.\n", name)

		return nil
	}

	_, _ = fmt.Fprintf(out, "Switched to profile: %s\n", name)

	return nil
}
