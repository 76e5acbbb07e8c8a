// Package filters holds the view state shared by the inbox surfaces.
//
// Structure
//
//	filters.go    - time windows and the persisted filter state
//	pipeline.go   - track and album list pipelines built on that state
//	pagination.go - height derived page sizing and page clamping
//
// The state is pure data: stores hydrate it, handlers mutate it, and the
// pipelines read it. Nothing here touches the network or the database.
package filters
