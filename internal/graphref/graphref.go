// Package graphref parses graph references of the form "graph@variant".
package graphref

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultVariant is used when a reference has no "@variant" suffix
const DefaultVariant = "current"

var (
	graphIDPattern  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]{0,63}$`)
	variantPattern  = regexp.MustCompile(`^[a-zA-Z0-9/._-]{1,64}$`)
	subgraphPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// Ref identifies a variant of a graph in the registry
type Ref struct {
	Name    string `json:"name" yaml:"name"`
	Variant string `json:"variant" yaml:"variant"`
}

// Parse parses "graph" or "graph@variant".
func Parse(s string) (Ref, error) {
	s = strings.TrimSpace(s)

	name, variant, hasVariant := strings.Cut(s, "@")
	if !hasVariant {
		variant = DefaultVariant
	}

	if !graphIDPattern.MatchString(name) {
		return Ref{}, &InvalidRefError{Input: s, Reason: "graph IDs must start with a letter and contain at most 64 letters, digits, underscores or dashes"}
	}

	if !variantPattern.MatchString(variant) {
		return Ref{}, &InvalidRefError{Input: s, Reason: "variants contain at most 64 letters, digits, or any of / . _ -"}
	}

	return Ref{Name: name, Variant: variant}, nil
}

func (r Ref) String() string {
	return r.Name + "@" + r.Variant
}

// ValidateSubgraphName checks a subgraph name against what the registry accepts
func ValidateSubgraphName(name string) error {
	if !subgraphPattern.MatchString(name) {
		return fmt.Errorf("invalid subgraph name %q: use at most 64 letters, digits, underscores or dashes", name)
	}

	return nil
}

// InvalidRefError reports a malformed graph reference
type InvalidRefError struct {
	Input  string
	Reason string
}

func (e *InvalidRefError) Error() string {
	return fmt.Sprintf("invalid graph reference %q: %s", e.Input, e.Reason)
}
