// Package session keeps a secret listing, fetched secret values and their
// per-field masking consistent while a user browses a store.
//
// A Catalog holds the ordered summaries from the last successful listing. A
// Registry caches one Session per secret id so each value is fetched once
// until it is evicted. A Session renders its value as rows, masking every
// field that has not been toggled visible.
//
// The store itself is reached through the Lister and Fetcher interfaces; the
// package performs no process or network I/O.
package session
