// Package models defines domain entities for the curation service.
//
// The package contains two categories of types:
//
// 1. Fetched snapshot entities: immutable rows normalized from the spreadsheet sources
//   - [TrackEntry] : A curated track candidate with curator attribution
//   - [AlbumEntry] : An album release candidate with its raw "Artist - Title" label
//
// 2. Local state entities: user actions layered over the fetched snapshot
//   - [LikeableItem] : Identity and display fields shared by likeable entries
//   - [HistoryEntry] : The single like/unlike record kept per entry id
//   - [PreviewTrack] : A normalized track shape from the third-party preview catalogs
//   - [AlbumPreview] : A resolved album track listing for in-page playback
//   - [SearchResult] : A normalized row from the library search webhook
//
// Fetched entities are recreated on every source fetch and never mutated; the UI
// overlays checked/liked/dismissed state from the stores package on top of them.
package models
