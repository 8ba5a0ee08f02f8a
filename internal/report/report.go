// Package report renders the outcome of a subgraph publish.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/inovacc/supergraph/internal/client"
	"github.com/inovacc/supergraph/internal/style"
	"gopkg.in/yaml.v3"
)

// Format selects how a publish response is rendered
type Format int

const (
	FormatPlain Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps an --output value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "plain":
		return FormatPlain, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatPlain, fmt.Errorf("unknown output format %q (valid: plain, json, yaml)", s)
	}
}

// Publish is the document written for a finished publish.
type Publish struct {
	GraphRef string                  `json:"graph_ref" yaml:"graph_ref"`
	Subgraph string                  `json:"subgraph" yaml:"subgraph"`
	Response *client.PublishResponse `json:"publish_response" yaml:"publish_response"`
}

// Write renders p to w in the given format.
func Write(w io.Writer, format Format, p Publish) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(p); err != nil {
			return err
		}

		return enc.Close()
	default:
		return writePlain(w, p)
	}
}

func writePlain(w io.Writer, p Publish) error {
	resp := p.Response
	if resp == nil {
		resp = &client.PublishResponse{}
	}

	paint := style.For(w)
	ref := paint.Paint(style.Link, p.GraphRef)
	name := paint.Paint(style.Link, p.Subgraph)

	var b strings.Builder

	switch {
	case resp.SubgraphWasCreated:
		fmt.Fprintf(&b, "A new subgraph called '%s' was created in '%s'\n", name, ref)
	case resp.SubgraphWasUpdated:
		fmt.Fprintf(&b, "The '%s' subgraph in '%s' was updated\n", name, ref)
	default:
		fmt.Fprintf(&b, "The '%s' subgraph was NOT updated because the schema is identical to the one already published\n", name)
	}

	if resp.SupergraphWasUpdated {
		fmt.Fprintf(&b, "The supergraph schema for '%s' was updated, composed from the updated '%s' subgraph\n", ref, name)
	} else {
		fmt.Fprintf(&b, "The supergraph schema for '%s' was NOT updated with a new schema\n", ref)
	}

	if len(resp.BuildErrors) > 0 {
		fmt.Fprintf(&b, "%s The following build errors occurred:\n", paint.Paint(style.WarningPrefix, "WARN:"))

		for _, e := range resp.BuildErrors {
			if e.Code != "" {
				fmt.Fprintf(&b, "  %s: %s\n", e.Code, e.Message)
			} else {
				fmt.Fprintf(&b, "  %s\n", e.Message)
			}
		}
	}

	if resp.LaunchCLICopy != "" {
		fmt.Fprintf(&b, "%s\n", resp.LaunchCLICopy)
	}

	if resp.LaunchURL != "" {
		fmt.Fprintf(&b, "Monitor your schema delivery progress on Studio: %s\n", paint.Paint(style.Link, resp.LaunchURL))
	}

	_, err := io.WriteString(w, b.String())

	return err
}
