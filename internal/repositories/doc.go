// Package repositories provides the persistence layer over sqlite.
//
// Two repositories back the dashboard's local state: LikeRepository keeps the
// like history (one row per entry id, updated in place), and KVRepository
// stores namespaced JSON snapshots for the client-state stores.
package repositories
