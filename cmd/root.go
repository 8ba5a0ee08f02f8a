package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/inovacc/supergraph/internal/application"
	"github.com/inovacc/supergraph/internal/config"
	"github.com/inovacc/supergraph/internal/logging"
	"github.com/inovacc/supergraph/internal/routingurl"
	"github.com/inovacc/supergraph/internal/store"
	"github.com/inovacc/supergraph/internal/style"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	noColor   bool
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Publish federated GraphQL subgraph schemas",
	Long: `Supergraph publishes subgraph schemas to a schema registry.

Before a publish it checks the subgraph's routing URL. URLs the router could
never reach (unparsable, a scheme other than http or https, or a host such as
localhost) are confirmed interactively on a terminal and rejected in CI unless
--allow-invalid-routing-url is given.`,
	Version:           application.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $XDG_CONFIG_HOME/supergraph/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// setup loads configuration and the logger before any command runs. Flags
// win over config and environment.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(config.LoadOptions{FilePath: cfgFile})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.Log.Level = logLevel
	}

	if flags.Changed("log-format") {
		loaded.Log.Format = logFormat
	}

	if noColor {
		loaded.NoColor = true
	}

	if loaded.NoColor {
		style.Disable()
	}

	l, err := logging.New(loaded.Log.Format, loaded.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cfg = loaded
	logger = l
	slog.SetDefault(l)

	logger.Debug("configuration loaded",
		slog.String("path", loaded.Path),
		slog.String("storage", loaded.Storage.Backend),
	)

	return nil
}

// openStore opens the configured profile store.
func openStore() (store.Store, error) {
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}

	st, err := store.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile store: %w", err)
	}

	return st, nil
}

// printError writes err and, for routing URL failures, the remediation hint.
func printError(w io.Writer, err error) {
	paint := style.For(w)

	msg := err.Error()

	var routingErr *routingurl.Error
	if errors.As(err, &routingErr) {
		msg = strings.Replace(msg, routingErr.Error(), routingErr.Render(func(u string) string {
			return paint.Paint(style.Link, u)
		}), 1)
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", paint.Paint(style.ErrorPrefix, "Error:"), msg)

	if routingErr != nil && routingErr.Suggestion != routingurl.SuggestionNone {
		_, _ = fmt.Fprintf(w, "%s\n", routingErr.Suggestion)
	}
}
