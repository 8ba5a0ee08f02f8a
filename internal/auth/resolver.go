// Package auth resolves the registry API key from multiple sources with a
// fixed priority order.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/inovacc/supergraph/internal/model"
)

// EnvKey is the environment variable holding an API key.
const EnvKey = "SUPERGRAPH_KEY"

// Source indicates where a key was found
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceProfile Source = "profile"
	SourceNone    Source = "none"
)

// ErrNoKey is returned when no source yields an API key.
var ErrNoKey = errors.New("registry API key required")

// ProfileNotFoundError is returned when a profile requested by name does not
// exist.
type ProfileNotFoundError struct {
	Name string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("there is no profile named %q", e.Name)
}

// Result contains the resolved key and where it came from
type Result struct {
	Key      string
	Source   Source
	Name     string // e.g. "--key", "SUPERGRAPH_KEY", "profile:default"
	Profile  string // profile name, empty unless Source is SourceProfile
	Endpoint string // registry endpoint stored with the profile, if any
}

// ProfileSource is the subset of the store used for key lookup.
type ProfileSource interface {
	GetProfile(name string) (*model.Profile, error)
	GetActiveProfile() (*model.Profile, error)
}

// KeyProvider attempts to provide a key. It returns nil when the source has
// nothing to offer and an error only for unexpected failures.
type KeyProvider func() (*Result, error)

// Resolver resolves keys from multiple sources in priority order
type Resolver struct {
	providers   []KeyProvider
	helpMessage string
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{providers: make([]KeyProvider, 0)}
}

// WithFlag adds a flag-provided key (checked in registration order).
func (r *Resolver) WithFlag(value string) *Resolver {
	r.providers = append(r.providers, func() (*Result, error) {
		if value == "" {
			return nil, nil
		}

		return &Result{Key: value, Source: SourceFlag, Name: "--key"}, nil
	})

	return r
}

// WithEnv adds an environment variable as a key source
func (r *Resolver) WithEnv(envVar string) *Resolver {
	r.providers = append(r.providers, func() (*Result, error) {
		key := strings.TrimSpace(os.Getenv(envVar))
		if key == "" {
			return nil, nil
		}

		return &Result{Key: key, Source: SourceEnv, Name: envVar}, nil
	})

	return r
}

// WithProfiles adds the stored profiles as a source. When name is set only
// that profile is consulted and its absence is an error; otherwise the active
// profile is used, then the one called "default".
func (r *Resolver) WithProfiles(ps ProfileSource, name string) *Resolver {
	r.providers = append(r.providers, func() (*Result, error) {
		if ps == nil {
			return nil, nil
		}

		if name != "" {
			p, err := ps.GetProfile(name)
			if err != nil {
				return nil, fmt.Errorf("loading profile %q: %w", name, err)
			}

			if p == nil {
				return nil, &ProfileNotFoundError{Name: name}
			}

			return fromProfile(p), nil
		}

		p, err := ps.GetActiveProfile()
		if err != nil {
			return nil, fmt.Errorf("loading active profile: %w", err)
		}

		if p == nil {
			if p, err = ps.GetProfile(model.DefaultProfileName); err != nil {
				return nil, fmt.Errorf("loading default profile: %w", err)
			}
		}

		if p == nil {
			return nil, nil
		}

		return fromProfile(p), nil
	})

	return r
}

// WithProvider adds a custom key provider
func (r *Resolver) WithProvider(provider KeyProvider) *Resolver {
	r.providers = append(r.providers, provider)

	return r
}

// WithHelpMessage sets the help message shown when no key is found
func (r *Resolver) WithHelpMessage(msg string) *Resolver {
	r.helpMessage = msg

	return r
}

// Resolve returns the first key found across the configured sources.
func (r *Resolver) Resolve() (*Result, error) {
	for _, provider := range r.providers {
		res, err := provider()
		if err != nil {
			return nil, err
		}

		if res != nil && res.Key != "" {
			return res, nil
		}
	}

	if r.helpMessage != "" {
		return nil, fmt.Errorf("%w\n\n%s", ErrNoKey, r.helpMessage)
	}

	return nil, ErrNoKey
}

// DefaultHelp is shown when no key can be resolved.
const DefaultHelp = `Provide a key in one of these ways:
  1. supergraph profile add default
  2. export ` + EnvKey + `=<key>
  3. supergraph subgraph publish ... --key <key>`

// New builds the standard chain: flag, environment, then profiles.
func New(flagKey, profileName string, ps ProfileSource) *Resolver {
	return NewResolver().
		WithFlag(flagKey).
		WithEnv(EnvKey).
		WithProfiles(ps, profileName).
		WithHelpMessage(DefaultHelp)
}

func fromProfile(p *model.Profile) *Result {
	return &Result{
		Key:      p.APIKey,
		Source:   SourceProfile,
		Name:     "profile:" + p.Name,
		Profile:  p.Name,
		Endpoint: p.Endpoint,
	}
}
