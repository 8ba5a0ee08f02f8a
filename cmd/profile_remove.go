package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a profile",
	Long: `Delete a registry credential profile and its stored key.

Removing the active profile asks for confirmation unless --force is given.

Examples:
  supergraph profile remove old-profile
  supergraph profile remove default --force`,
	Aliases: []string{"rm", "delete"},
	Args:    cobra.ExactArgs(1),
	RunE:    runProfileRemove,
}

var profileRemoveForce bool

func init() {
	profileCmd.AddCommand(profileRemoveCmd)

	profileRemoveCmd.Flags().BoolVarP(&profileRemoveForce, "force", "f", false, "Skip confirmation")
}

func runProfileRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	st, err := openStore()
	if err != nil {
		return err
	}

	defer func() {
		_ = st.Close()
	}()

	profile, err := st.GetProfile(name)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if profile == nil {
		return fmt.Errorf("profile '%s' not found", name)
	}

	// Warn if deleting active profile
	if profile.Active && !profileRemoveForce {
		_, _ = fmt.Fprintf(out, "Warning: '%s' is the active profile.\n", name)

		if !promptConfirm(cmd.InOrStdin(), out, "Are you sure you want to delete it? [y/N]: ") {
			_, _ = fmt.Fprintln(out, "Cancelled.")

			return nil
		}
	}

	if err := st.DeleteProfile(name); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Profile '%s' deleted.\n", name)

	// If we deleted the active profile, suggest setting a new one
	if profile.Active {
		profiles, listErr := st.ListProfiles()
		if listErr == nil && len(profiles) > 0 {
			_, _ = fmt.Fprintf(out, "\nTo set a new active profile: supergraph profile use %s\n", profiles[0].Name)
		}
	}

	return nil
}
