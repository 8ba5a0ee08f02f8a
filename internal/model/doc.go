// Package model defines the data structures persisted by supergraph.
//
// # Profile
//
// The [Profile] struct holds the credentials for one registry account:
//
//	type Profile struct {
//	    Name       string    // Unique profile name ("default" when none is given)
//	    APIKey     string    // Registry API key
//	    Endpoint   string    // Registry GraphQL endpoint override
//	    Active     bool      // Used when --profile is omitted
//	    CreatedAt  time.Time // When the profile was created
//	    LastUsedAt time.Time // Last publish made with it
//	}
package model
