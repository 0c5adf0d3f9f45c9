// Package types defines the entity records, the Ledger interface, and the
// standard errors shared by the diamond-intel store and HTTP layer.
//
// Records carry both db and json tags: sqlx maps result columns onto them and
// the HTTP layer serializes them as-is. Optional columns are pointers so a
// NULL round-trips as JSON null.
package types
