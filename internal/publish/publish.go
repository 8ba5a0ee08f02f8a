// Package publish runs a subgraph publish: it validates the routing URL,
// reads the schema and hands both to the registry.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inovacc/supergraph/internal/client"
	"github.com/inovacc/supergraph/internal/gitctx"
	"github.com/inovacc/supergraph/internal/graphref"
	"github.com/inovacc/supergraph/internal/routingurl"
	"github.com/inovacc/supergraph/internal/style"
)

// RoutingURLFetcher looks up the routing URL the registry currently holds.
type RoutingURLFetcher interface {
	FetchRoutingURL(ctx context.Context, ref graphref.Ref, subgraph string) (string, error)
}

// SchemaPublisher sends a schema to the registry.
type SchemaPublisher interface {
	PublishSubgraph(ctx context.Context, in client.PublishInput) (*client.PublishResponse, error)
}

// SchemaReader loads SDL from a file path or "-".
type SchemaReader interface {
	Read(source string) (string, error)
}

// Dependencies are the collaborators of a Publisher.
type Dependencies struct {
	Fetcher   RoutingURLFetcher
	Publisher SchemaPublisher
	Schemas   SchemaReader

	// Terminal is where prompts, warnings and status lines go.
	Terminal routingurl.Terminal
	Logger   *slog.Logger
}

// Options describe a single publish.
type Options struct {
	GraphRef graphref.Ref
	Subgraph string

	// RoutingURL is nil when the user did not supply one; the registry's
	// current value is then validated and left unchanged.
	RoutingURL *string

	SchemaSource           string
	Convert                bool
	AllowInvalidRoutingURL bool
	GitContext             gitctx.Context

	// ProfileName is reported in the status line.
	ProfileName string
}

// Result is a finished publish.
type Result struct {
	GraphRef graphref.Ref
	Subgraph string
	Response *client.PublishResponse
}

// Publisher orchestrates validation and publishing.
type Publisher struct {
	deps   Dependencies
	logger *slog.Logger
}

// New validates deps and returns a Publisher.
func New(deps Dependencies) (*Publisher, error) {
	var errs []error

	if deps.Fetcher == nil {
		errs = append(errs, errors.New("routing URL fetcher is required"))
	}

	if deps.Publisher == nil {
		errs = append(errs, errors.New("schema publisher is required"))
	}

	if deps.Schemas == nil {
		errs = append(errs, errors.New("schema reader is required"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Publisher{deps: deps, logger: logger}, nil
}

// Run validates the routing URL and publishes the schema. Nothing is sent to
// the registry unless the URL was accepted.
func (p *Publisher) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := graphref.ValidateSubgraphName(opts.Subgraph); err != nil {
		return nil, err
	}

	if err := p.checkRoutingURL(ctx, opts); err != nil {
		return nil, err
	}

	out := p.deps.Terminal.Out
	if out != nil {
		paint := style.For(out)
		_, _ = fmt.Fprintf(out, "Publishing SDL to %s (subgraph: %s) using credentials from the %s profile.\n",
			paint.Paint(style.Link, opts.GraphRef.String()),
			paint.Paint(style.Link, opts.Subgraph),
			paint.Paint(style.Command, opts.ProfileName),
		)
	}

	sdl, err := p.deps.Schemas.Read(opts.SchemaSource)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("publishing schema",
		slog.String("graph_ref", opts.GraphRef.String()),
		slog.String("subgraph", opts.Subgraph),
		slog.String("sdl", sdl),
	)

	resp, err := p.deps.Publisher.PublishSubgraph(ctx, client.PublishInput{
		GraphRef:   opts.GraphRef,
		Subgraph:   opts.Subgraph,
		URL:        opts.RoutingURL,
		Schema:     sdl,
		GitContext: opts.GitContext,
		Convert:    opts.Convert,
	})
	if err != nil {
		return nil, err
	}

	return &Result{GraphRef: opts.GraphRef, Subgraph: opts.Subgraph, Response: resp}, nil
}

// checkRoutingURL runs the confirmation protocol on the supplied URL, or on
// the registry's current URL when none was supplied.
func (p *Publisher) checkRoutingURL(ctx context.Context, opts Options) error {
	if opts.AllowInvalidRoutingURL {
		p.logger.Debug("routing URL validation bypassed")

		return nil
	}

	c, ok := routingurl.ClassifyCandidate(opts.RoutingURL)
	if !ok {
		fetched, err := p.deps.Fetcher.FetchRoutingURL(ctx, opts.GraphRef, opts.Subgraph)
		if err != nil {
			return err
		}

		p.logger.Debug("fetched current routing URL", slog.String("url", fetched))

		c = routingurl.Classify(fetched)
	}

	if c.Err != nil {
		p.logger.Debug("parse error", slog.String("url", c.URL), slog.String("error", c.Err.Error()))
	} else {
		p.logger.Debug("parsed URL", slog.String("url", c.URL), slog.String("classification", c.Kind.String()))
	}

	outcome, err := routingurl.Confirm(c, p.deps.Terminal)
	if err != nil {
		return err
	}

	p.logger.Debug("routing URL accepted", slog.String("outcome", outcome.String()))

	return nil
}
