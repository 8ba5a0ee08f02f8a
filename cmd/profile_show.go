package cmd

import (
	"fmt"

	"github.com/inovacc/supergraph/internal/model"
	"github.com/spf13/cobra"
)

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show profile information",
	Long: `Show information about a profile.

If no name is provided, shows the active profile.

Examples:
  supergraph profile show
  supergraph profile show staging`,
	Aliases: []string{"status"},
	Args:    cobra.MaximumNArgs(1),
	RunE:    runProfileShow,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	st, err := openStore()
	if err != nil {
		return err
	}

	defer func() {
		_ = st.Close()
	}()

	var profile *model.Profile

	if len(args) > 0 {
		if profile, err = st.GetProfile(args[0]); err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}

		if profile == nil {
			return fmt.Errorf("profile '%s' not found", args[0])
		}
	} else {
		if profile, err = st.GetActiveProfile(); err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}

		if profile == nil {
			_, _ = fmt.Fprintln(out, "No active profile.")
			_, _ = fmt.Fprintln(out, "\nCreate a profile with: supergraph profile add <name>")

			return nil
		}
	}

	endpoint := profile.Endpoint
	if endpoint == "" {
		endpoint = cfg.Registry.Endpoint + " (default)"
	}

	_, _ = fmt.Fprintf(out, "Profile: %s\n", profile.Name)
	_, _ = fmt.Fprintf(out, "Key: %s\n", profile.MaskedKey())
	_, _ = fmt.Fprintf(out, "Endpoint: %s\n", endpoint)
	_, _ = fmt.Fprintf(out, "Active: %t\n", profile.Active)
	_, _ = fmt.Fprintf(out, "Created: %s\n", formatTime(profile.CreatedAt))
	_, _ = fmt.Fprintf(out, "Last used: %s\n", formatTime(profile.LastUsedAt))

	return nil
}
