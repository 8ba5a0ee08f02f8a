// Package routingurl classifies the routing URL a subgraph is published with
// and runs the confirmation protocol that decides whether the publish may go
// ahead.
//
// Everything the protocol needs (the candidate URL, whether the session is
// interactive, and the input and output streams) is passed in on each call.
// Nothing is probed from the process or cached between calls.
package routingurl

import (
	"net/url"
	"slices"
	"strings"
)

// Kind categorizes a candidate routing URL.
type Kind int

const (
	KindUnparsable Kind = iota
	KindUnsupportedScheme
	KindLocalHost
	KindValidPublic
)

func (k Kind) String() string {
	switch k {
	case KindUnparsable:
		return "unparsable"
	case KindUnsupportedScheme:
		return "unsupported scheme"
	case KindLocalHost:
		return "local host"
	case KindValidPublic:
		return "valid public"
	}

	return "unknown"
}

var (
	supportedSchemes = []string{"http", "https"}
	localHosts       = []string{"localhost", "127.0.0.1"}
)

// Classification is the verdict for a single candidate URL.
type Classification struct {
	Kind Kind

	// URL is the candidate exactly as supplied
	URL string

	// Scheme is set for every kind except KindUnparsable
	Scheme string

	// Host is the hostname without port, when the URL has one
	Host string

	// Err is the parse failure behind KindUnparsable
	Err error
}

// ClassifyCandidate classifies an optional candidate. A nil candidate is
// deferred: ok is false and the caller is expected to obtain a URL from the
// registry and classify that instead. An empty string is a real candidate.
func ClassifyCandidate(candidate *string) (c Classification, ok bool) {
	if candidate == nil {
		return Classification{}, false
	}

	return Classify(*candidate), true
}

// Classify parses raw as an absolute URL and sorts it into one of the four
// kinds. For http(s) the host is lowercased and numeric hosts are rewritten
// to dotted quads before it is matched exactly against the local allow-list.
func Classify(raw string) Classification {
	c := Classification{URL: raw}

	u, err := parseAbsolute(raw)
	if err != nil {
		c.Kind = KindUnparsable
		c.Err = err

		return c
	}

	c.Scheme = u.Scheme
	c.Host = u.Hostname()

	if !slices.Contains(supportedSchemes, c.Scheme) {
		c.Kind = KindUnsupportedScheme

		return c
	}

	if c.Host, err = canonicalHost(c.Host); err != nil {
		return Classification{
			Kind: KindUnparsable,
			URL:  raw,
			Err:  &url.Error{Op: "parse", URL: raw, Err: err},
		}
	}

	switch {
	case slices.Contains(localHosts, c.Host):
		c.Kind = KindLocalHost
	default:
		c.Kind = KindValidPublic
	}

	return c
}

// parseAbsolute rejects what net/url accepts as a relative reference, and
// http(s) URLs with no host, so only absolute URLs classify past unparsable.
// For http(s) the authority may follow the colon with any number of slashes,
// so http:localhost:4000 and http:/localhost both name the host localhost.
func parseAbsolute(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	if u.Scheme == "" {
		return nil, &url.Error{Op: "parse", URL: raw, Err: errRelativeURL}
	}

	if slices.Contains(supportedSchemes, u.Scheme) {
		rest := raw[len(u.Scheme)+1:]
		if !strings.HasPrefix(rest, "//") {
			if u, err = url.Parse(u.Scheme + "://" + strings.TrimLeft(rest, "/")); err != nil {
				return nil, err
			}
		}
	}

	if slices.Contains(supportedSchemes, u.Scheme) && u.Hostname() == "" {
		return nil, &url.Error{Op: "parse", URL: raw, Err: errEmptyHost}
	}

	return u, nil
}
