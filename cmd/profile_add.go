package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/inovacc/supergraph/internal/model"
	"github.com/spf13/cobra"
)

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create or replace a profile",
	Long: `Create a registry credential profile.

The API key is taken from --key. Otherwise it is read from the terminal
without echo, or as one line from stdin when stdin is not a terminal.

The first profile created becomes the active profile.

Examples:
  supergraph profile add default
  supergraph profile add staging --endpoint https://registry.staging.example.com/graphql
  echo "$KEY" | supergraph profile add ci
  supergraph profile add default --key service:my-graph:abc123 --overwrite`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileAdd,
}

var (
	profileAddKey       string
	profileAddEndpoint  string
	profileAddOverwrite bool
)

func init() {
	profileCmd.AddCommand(profileAddCmd)

	profileAddCmd.Flags().StringVar(&profileAddKey, "key", "", "Registry API key (prompted for when omitted)")
	profileAddCmd.Flags().StringVar(&profileAddEndpoint, "endpoint", "", "Registry endpoint for this profile (default: registry.endpoint setting)")
	profileAddCmd.Flags().BoolVar(&profileAddOverwrite, "overwrite", false, "Replace an existing profile")
}

func runProfileAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	st, err := openStore()
	if err != nil {
		return err
	}

	defer func() {
		_ = st.Close()
	}()

	existing, err := st.GetProfile(name)
	if err != nil {
		return fmt.Errorf("failed to check profile existence: %w", err)
	}

	if existing != nil && !profileAddOverwrite {
		return fmt.Errorf("profile '%s' already exists\nReplace it with: supergraph profile add %s --overwrite", name, name)
	}

	key := profileAddKey
	if key == "" {
		if key, err = readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Paste your registry API key: "); err != nil {
			return err
		}
	}

	if key == "" {
		return errors.New("API key must not be empty")
	}

	profiles, err := st.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	isFirstProfile := len(profiles) == 0

	profile := &model.Profile{
		Name:     name,
		APIKey:   key,
		Endpoint: profileAddEndpoint,
		Active:   isFirstProfile,
	}

	if existing != nil {
		profile.Active = existing.Active
		profile.CreatedAt = existing.CreatedAt
		profile.LastUsedAt = existing.LastUsedAt
	} else {
		profile.CreatedAt = time.Now()
	}

	if err := st.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Profile '%s' saved.\n", profile.Name)
	_, _ = fmt.Fprintf(out, "Key: %s\n", profile.MaskedKey())

	if profile.Endpoint != "" {
		_, _ = fmt.Fprintf(out, "Endpoint: %s\n", profile.Endpoint)
	}

	switch {
	case isFirstProfile:
		_, _ = fmt.Fprintln(out, "\nThis profile is now active.")
	case !profile.Active:
		_, _ = fmt.Fprintf(out, "\nTo make it active: supergraph profile use %s\n", name)
	}

	return nil
}
