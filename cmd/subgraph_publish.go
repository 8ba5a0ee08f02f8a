package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/inovacc/supergraph/internal/auth"
	"github.com/inovacc/supergraph/internal/client"
	"github.com/inovacc/supergraph/internal/gitctx"
	"github.com/inovacc/supergraph/internal/graphref"
	"github.com/inovacc/supergraph/internal/model"
	"github.com/inovacc/supergraph/internal/publish"
	"github.com/inovacc/supergraph/internal/report"
	"github.com/inovacc/supergraph/internal/routingurl"
	"github.com/inovacc/supergraph/internal/schema"
	"github.com/spf13/cobra"
)

var subgraphPublishCmd = &cobra.Command{
	Use:   "publish <GRAPH_REF>",
	Short: "Publish a subgraph schema",
	Long: `Publish an updated subgraph schema to the schema registry and compose it
into the supergraph.

GRAPH_REF is <graph>@<variant>; the variant defaults to "current".

The routing URL is checked before anything is sent. When --routing-url is
omitted the registry's current URL is checked instead and left unchanged.
Passing --routing-url "" publishes an intentional placeholder, which is
checked like any other value.

On a terminal, an unusable URL is confirmed with a [y/N] prompt. Without a
terminal (CI), an unparsable URL or an unsupported scheme fails the publish
and a localhost URL only prints a warning. --allow-invalid-routing-url skips
the check entirely.

Examples:
  supergraph subgraph publish my-graph@current --name products --schema products.graphql \
    --routing-url https://products.example.com/graphql
  cat products.graphql | supergraph subgraph publish my-graph --name products --schema -
  supergraph subgraph publish my-graph@dev --name products --schema products.graphql \
    --routing-url http://localhost:4001 --allow-invalid-routing-url`,
	Args: cobra.ExactArgs(1),
	RunE: runSubgraphPublish,
}

var (
	publishName         string
	publishSchema       string
	publishRoutingURL   string
	publishAllowInvalid bool
	publishConvert      bool
	publishProfile      string
	publishKey          string
	publishOutput       string
)

func init() {
	subgraphCmd.AddCommand(subgraphPublishCmd)

	flags := subgraphPublishCmd.Flags()
	flags.StringVar(&publishName, "name", "", "Name of the subgraph to publish")
	flags.StringVarP(&publishSchema, "schema", "s", "", "Path to the SDL file, or - to read stdin")
	flags.StringVar(&publishRoutingURL, "routing-url", "", "URL the router uses to reach this subgraph")
	flags.BoolVar(&publishAllowInvalid, "allow-invalid-routing-url", false, "Skip routing URL validation")
	flags.BoolVar(&publishConvert, "convert", false, "Convert a non-federated graph into a subgraph")
	flags.StringVar(&publishProfile, "profile", "", "Profile to take credentials from (default: active profile)")
	flags.StringVar(&publishKey, "key", "", "Registry API key (overrides profiles and "+auth.EnvKey+")")
	flags.StringVarP(&publishOutput, "output", "o", "plain", "Output format: plain, json or yaml")

	_ = subgraphPublishCmd.MarkFlagRequired("name")
	_ = subgraphPublishCmd.MarkFlagRequired("schema")
}

func runSubgraphPublish(cmd *cobra.Command, args []string) error {
	ref, err := graphref.Parse(args[0])
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(publishOutput)
	if err != nil {
		return err
	}

	// An explicitly empty --routing-url is a present candidate.
	var routingURL *string
	if cmd.Flags().Changed("routing-url") {
		u := publishRoutingURL
		routingURL = &u
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	defer func() {
		_ = st.Close()
	}()

	creds, err := auth.New(publishKey, publishProfile, st).Resolve()
	if err != nil {
		return err
	}

	endpoint := creds.Endpoint
	if endpoint == "" {
		endpoint = cfg.Registry.Endpoint
	}

	logger.Debug("resolved credentials",
		slog.String("source", creds.Name),
		slog.String("key", model.MaskKey(creds.Key)),
		slog.String("endpoint", endpoint),
	)

	registry, err := client.New(endpoint, creds.Key, client.WithLogger(logger))
	if err != nil {
		return err
	}

	git := detectGitContext()

	in := cmd.InOrStdin()
	status := cmd.ErrOrStderr()

	publisher, err := publish.New(publish.Dependencies{
		Fetcher:   registry,
		Publisher: registry,
		Schemas:   schema.NewReader(in),
		Terminal: routingurl.Terminal{
			In:          in,
			Out:         status,
			Interactive: isInteractive(in, status),
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	result, err := publisher.Run(commandContext(cmd), publish.Options{
		GraphRef:               ref,
		Subgraph:               publishName,
		RoutingURL:             routingURL,
		SchemaSource:           publishSchema,
		Convert:                publishConvert,
		AllowInvalidRoutingURL: publishAllowInvalid,
		GitContext:             git,
		ProfileName:            credentialLabel(creds),
	})
	if err != nil {
		return err
	}

	if creds.Source == auth.SourceProfile {
		if err := st.TouchProfile(creds.Profile, time.Now()); err != nil {
			logger.Warn("failed to record profile use", slog.String("profile", creds.Profile), slog.String("error", err.Error()))
		}
	}

	return report.Write(cmd.OutOrStdout(), format, report.Publish{
		GraphRef: result.GraphRef.String(),
		Subgraph: result.Subgraph,
		Response: result.Response,
	})
}

// credentialLabel is the profile named in the status line. Keys from --key
// or the environment are reported against the default profile.
func credentialLabel(creds *auth.Result) string {
	if creds.Source == auth.SourceProfile && creds.Profile != "" {
		return creds.Profile
	}

	if publishProfile != "" {
		return publishProfile
	}

	return model.DefaultProfileName
}

func detectGitContext() gitctx.Context {
	wd, err := os.Getwd()
	if err != nil {
		logger.Debug("cannot determine working directory", slog.String("error", err.Error()))

		return gitctx.Context{}
	}

	git, err := gitctx.Detect(wd)
	if err != nil {
		logger.Warn("failed to read git metadata", slog.String("error", err.Error()))
	}

	return git
}
