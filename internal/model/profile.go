package model

import (
	"strings"
	"time"
)

// DefaultProfileName is the profile used when none is named or active
const DefaultProfileName = "default"

// Profile holds the credentials for one registry account
type Profile struct {
	// Name is the unique identifier for this profile
	Name string `json:"name"`

	// APIKey authenticates requests to the registry
	APIKey string `json:"api_key"`

	// Endpoint is the registry GraphQL endpoint; empty means the configured default
	Endpoint string `json:"endpoint,omitempty"`

	// Active indicates if this is the profile used when --profile is not given
	Active bool `json:"active"`

	// CreatedAt is when the profile was created
	CreatedAt time.Time `json:"created_at"`

	// LastUsedAt is when the profile was last used to publish
	LastUsedAt time.Time `json:"last_used_at"`
}

// DefaultEndpoint returns the registry endpoint used when neither the
// profile nor the configuration names one
func DefaultEndpoint() string {
	return "https://api.apollographql.com/graphql"
}

// MaskedKey returns the API key with everything but its last four
// characters hidden
func (p *Profile) MaskedKey() string {
	return MaskKey(p.APIKey)
}

// MaskKey hides all but the last four characters of key
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}

	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
