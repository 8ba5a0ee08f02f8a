// Package client talks to the schema registry over its GraphQL HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/supergraph/internal/application"
	"golang.org/x/oauth2"
)

const (
	headerRequestID     = "X-Request-ID"
	headerClientName    = "apollographql-client-name"
	headerClientVersion = "apollographql-client-version"

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4096
)

var (
	// ErrGraphNotFound is returned when the graph ref does not name an
	// existing graph variant.
	ErrGraphNotFound = errors.New("graph not found")
	// ErrSubgraphNotFound is returned when the variant has no subgraph with
	// the requested name.
	ErrSubgraphNotFound = errors.New("subgraph not found")
)

// HTTPError is returned for non-2xx registry responses.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("registry returned HTTP %d", e.StatusCode)
	}

	return fmt.Sprintf("registry returned HTTP %d: %s", e.StatusCode, e.Body)
}

// GraphQLError carries the errors array of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "registry error: " + strings.Join(e.Messages, "; ")
}

// Client is a registry API client
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the base HTTP client. Its transport is wrapped with
// the bearer token transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a registry client for endpoint authenticated with apiKey.
func New(endpoint, apiKey string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("registry endpoint is required")
	}

	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   endpoint,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Copy so a caller-supplied client is not mutated.
	hc := *c.httpClient
	hc.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"}),
		Base:   hc.Transport,
	}
	c.httpClient = &hc

	return c, nil
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// do posts a GraphQL operation and decodes its data into result.
func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any, result any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, OperationName: operation, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set(headerClientName, application.AppName)
	req.Header.Set(headerClientVersion, application.Version)

	c.logger.Debug("making registry request",
		slog.String("operation", operation),
		slog.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var gqlResp graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		gqlErr := &GraphQLError{Messages: make([]string, 0, len(gqlResp.Errors))}
		for _, e := range gqlResp.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}

		return gqlErr
	}

	if result != nil && len(gqlResp.Data) > 0 {
		if err := json.Unmarshal(gqlResp.Data, result); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}
