package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Long: `List all registry credential profiles.

The active profile is marked with an asterisk (*). Keys are masked.

Examples:
  supergraph profile list
  supergraph profile list --json`,
	Aliases: []string{"ls"},
	RunE:    runProfileList,
}

var profileListJSON bool

func init() {
	profileCmd.AddCommand(profileListCmd)

	profileListCmd.Flags().BoolVar(&profileListJSON, "json", false, "Output as JSON")
}

// ProfileListItem represents a profile in JSON output
type ProfileListItem struct {
	Name       string    `json:"name"`
	Key        string    `json:"key"`
	Endpoint   string    `json:"endpoint,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at,omitzero"`
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	st, err := openStore()
	if err != nil {
		return err
	}

	defer func() {
		_ = st.Close()
	}()

	profiles, err := st.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(profiles) == 0 {
		if profileListJSON {
			_, _ = fmt.Fprintln(out, "[]")

			return nil
		}

		printEmptyResult(out, "profiles", "supergraph profile add <name>")

		return nil
	}

	if profileListJSON {
		items := make([]ProfileListItem, 0, len(profiles))

		for _, p := range profiles {
			items = append(items, ProfileListItem{
				Name:       p.Name,
				Key:        p.MaskedKey(),
				Endpoint:   p.Endpoint,
				Active:     p.Active,
				CreatedAt:  p.CreatedAt,
				LastUsedAt: p.LastUsedAt,
			})
		}

		return outputJSON(out, items)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "NAME\tKEY\tENDPOINT\tLAST USED\tACTIVE")
	_, _ = fmt.Fprintln(w, "----\t---\t--------\t---------\t------")

	for _, p := range profiles {
		activeMarker := ""
		if p.Active {
			activeMarker = "*"
		}

		endpoint := p.Endpoint
		if endpoint == "" {
			endpoint = "(default)"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name,
			p.MaskedKey(),
			endpoint,
			formatTime(p.LastUsedAt),
			activeMarker,
		)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
