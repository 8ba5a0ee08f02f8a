// Package store provides the storage abstraction layer for supergraph.
//
// The package defines the [Store] interface which abstracts profile
// persistence, allowing different storage backends to be used
// interchangeably. Two backends are available and selected at runtime with
// the storage.backend setting:
//   - bolt (default): BoltDB, an embedded key-value store
//   - sqlite: SQLite through the pure Go modernc.org/sqlite driver
//
// Use [Open] to obtain a store:
//
//	st, err := store.Open(store.BackendBolt, dir)
//	profile, err := st.GetActiveProfile()
//
// API keys are stored as given; the database files are created with 0600
// permissions inside a 0700 directory.
package store
