package client

import (
	"context"
	"fmt"

	"github.com/inovacc/supergraph/internal/gitctx"
	"github.com/inovacc/supergraph/internal/graphref"
)

const routingURLQuery = `query SubgraphRoutingURL($graphRef: ID!, $subgraph: ID!) {
  variant(ref: $graphRef) {
    __typename
    ... on GraphVariant {
      subgraph(name: $subgraph) {
        url
      }
    }
  }
}`

const publishMutation = `mutation SubgraphPublish(
  $graphId: ID!
  $variant: String!
  $subgraph: String!
  $url: String
  $revision: String!
  $schema: PartialSchemaInput!
  $gitContext: GitContextInput!
  $convert: Boolean
) {
  graph(id: $graphId) {
    publishSubgraph(
      graphVariant: $variant
      name: $subgraph
      url: $url
      revision: $revision
      activePartialSchema: $schema
      gitContext: $gitContext
      convertToFederatedGraph: $convert
    ) {
      compositionConfig {
        schemaHash
      }
      errors {
        message
        code
      }
      didUpdateGateway: updatedGateway
      serviceWasCreated
      serviceWasUpdated
      launchUrl
      launchCliCopy
    }
  }
}`

// FetchRoutingURL returns the routing URL the registry holds for subgraph.
// An empty string means the subgraph exists without a URL.
func (c *Client) FetchRoutingURL(ctx context.Context, ref graphref.Ref, subgraph string) (string, error) {
	var data struct {
		Variant *struct {
			Typename string `json:"__typename"`
			Subgraph *struct {
				URL *string `json:"url"`
			} `json:"subgraph"`
		} `json:"variant"`
	}

	err := c.do(ctx, "SubgraphRoutingURL", routingURLQuery, map[string]any{
		"graphRef": ref.String(),
		"subgraph": subgraph,
	}, &data)
	if err != nil {
		return "", fmt.Errorf("fetching routing URL for %s in %s: %w", subgraph, ref, err)
	}

	if data.Variant == nil || data.Variant.Typename != "GraphVariant" {
		return "", fmt.Errorf("%w: %s", ErrGraphNotFound, ref)
	}

	if data.Variant.Subgraph == nil {
		return "", fmt.Errorf("%w: %s in %s", ErrSubgraphNotFound, subgraph, ref)
	}

	if data.Variant.Subgraph.URL == nil {
		return "", nil
	}

	return *data.Variant.Subgraph.URL, nil
}

// PublishInput is everything sent with a subgraph publish.
type PublishInput struct {
	GraphRef   graphref.Ref
	Subgraph   string
	URL        *string // nil keeps the registry's current URL
	Schema     string
	GitContext gitctx.Context
	Convert    bool
}

// BuildError is a composition error reported by the registry.
type BuildError struct {
	Message string `json:"message" yaml:"message"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
}

// PublishResponse is the registry's answer to a publish.
type PublishResponse struct {
	APISchemaHash        string       `json:"api_schema_hash,omitempty" yaml:"api_schema_hash,omitempty"`
	SupergraphWasUpdated bool         `json:"supergraph_was_updated" yaml:"supergraph_was_updated"`
	SubgraphWasCreated   bool         `json:"subgraph_was_created" yaml:"subgraph_was_created"`
	SubgraphWasUpdated   bool         `json:"subgraph_was_updated" yaml:"subgraph_was_updated"`
	BuildErrors          []BuildError `json:"build_errors" yaml:"build_errors"`
	LaunchURL            string       `json:"launch_url,omitempty" yaml:"launch_url,omitempty"`
	LaunchCLICopy        string       `json:"launch_cli_copy,omitempty" yaml:"launch_cli_copy,omitempty"`
}

// PublishSubgraph publishes a subgraph schema.
func (c *Client) PublishSubgraph(ctx context.Context, in PublishInput) (*PublishResponse, error) {
	var data struct {
		Graph *struct {
			PublishSubgraph *struct {
				CompositionConfig *struct {
					SchemaHash string `json:"schemaHash"`
				} `json:"compositionConfig"`
				Errors []*struct {
					Message string  `json:"message"`
					Code    *string `json:"code"`
				} `json:"errors"`
				DidUpdateGateway  bool    `json:"didUpdateGateway"`
				ServiceWasCreated bool    `json:"serviceWasCreated"`
				ServiceWasUpdated bool    `json:"serviceWasUpdated"`
				LaunchURL         *string `json:"launchUrl"`
				LaunchCLICopy     *string `json:"launchCliCopy"`
			} `json:"publishSubgraph"`
		} `json:"graph"`
	}

	vars := map[string]any{
		"graphId":    in.GraphRef.Name,
		"variant":    in.GraphRef.Variant,
		"subgraph":   in.Subgraph,
		"url":        in.URL,
		"revision":   in.GitContext.Commit,
		"schema":     map[string]any{"sdl": in.Schema},
		"gitContext": in.GitContext,
		"convert":    in.Convert,
	}

	if err := c.do(ctx, "SubgraphPublish", publishMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("publishing %s to %s: %w", in.Subgraph, in.GraphRef, err)
	}

	if data.Graph == nil {
		return nil, fmt.Errorf("%w: %s", ErrGraphNotFound, in.GraphRef)
	}

	pub := data.Graph.PublishSubgraph
	if pub == nil {
		return nil, fmt.Errorf("publishing %s to %s: registry returned no result", in.Subgraph, in.GraphRef)
	}

	resp := &PublishResponse{
		SupergraphWasUpdated: pub.DidUpdateGateway,
		SubgraphWasCreated:   pub.ServiceWasCreated,
		SubgraphWasUpdated:   pub.ServiceWasUpdated,
		BuildErrors:          make([]BuildError, 0, len(pub.Errors)),
	}

	if pub.CompositionConfig != nil {
		resp.APISchemaHash = pub.CompositionConfig.SchemaHash
	}

	for _, e := range pub.Errors {
		if e == nil {
			continue
		}

		be := BuildError{Message: e.Message}
		if e.Code != nil {
			be.Code = *e.Code
		}

		resp.BuildErrors = append(resp.BuildErrors, be)
	}

	if pub.LaunchURL != nil {
		resp.LaunchURL = *pub.LaunchURL
	}

	if pub.LaunchCLICopy != nil {
		resp.LaunchCLICopy = *pub.LaunchCLICopy
	}

	return resp, nil
}
