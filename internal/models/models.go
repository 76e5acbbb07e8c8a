// package models defines the data model for the curation service
package models

import (
	"fmt"
	"time"
)

// TrackEntry represents one curated track candidate from the tracks sheet.
type TrackEntry struct {
	ID         string    `json:"id"`
	Curator    string    `json:"curator"`
	Artist     string    `json:"artist"`
	Title      string    `json:"title"`
	AddedAt    time.Time `json:"added_at"`
	Checked    bool      `json:"checked"`
	Liked      bool      `json:"liked"`
	SpotifyID  string    `json:"spotify_id,omitempty"`
	SpotifyURL string    `json:"spotify_url,omitempty"`
}

// AlbumEntry represents one album release candidate from the albums sheet.
//
// Name carries the raw "Artist - Title" label; display code splits it heuristically.
type AlbumEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AddedAt     time.Time `json:"added_at"`
	ReleaseDate string    `json:"release_date,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	SpotifyURL  string    `json:"spotify_url,omitempty"`
	Checked     bool      `json:"checked"`
	Liked       bool      `json:"liked"`
}

// LikeableType distinguishes which inbox an entry came from.
type LikeableType string

const (
	LikeableTrack LikeableType = "track"
	LikeableAlbum LikeableType = "album"
)

// LikeableItem carries the identity and display fields recorded when an entry is liked.
type LikeableItem struct {
	ID         string       `json:"id"`
	Type       LikeableType `json:"type"`
	Title      string       `json:"title"`
	Subtitle   string       `json:"subtitle,omitempty"`
	URL        string       `json:"url,omitempty"`
	ArtworkURL string       `json:"artwork_url,omitempty"`
}

// Validate checks that the item can be recorded in the like history.
func (i LikeableItem) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("likeable item requires an id")
	}
	if i.Type != LikeableTrack && i.Type != LikeableAlbum {
		return fmt.Errorf("unknown likeable type %q", i.Type)
	}
	if i.Title == "" {
		return fmt.Errorf("likeable item requires a title")
	}
	return nil
}

// HistoryEntry is the single like/unlike record kept per entry id.
//
// Toggling like/unlike updates the record in place; records are archived by
// clearing Active, never deleted. UnlikedAt is zero while the entry is active.
type HistoryEntry struct {
	LikeableItem
	LikedAt   time.Time `json:"liked_at"`
	UnlikedAt time.Time `json:"unliked_at,omitempty"`
	Active    bool      `json:"active"`
}

// PreviewTrack is the normalized shape of a track returned by the preview catalogs.
//
// Zero values mean the upstream response did not carry the field.
type PreviewTrack struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	ID          string `json:"id,omitempty"`
	StreamURL   string `json:"stream_url,omitempty"`
	Duration    int    `json:"duration,omitempty"`
	TrackNumber int    `json:"track_number,omitempty"`
	Explicit    bool   `json:"explicit,omitempty"`
}

// AlbumPreview is a resolved album track listing for in-page playback.
type AlbumPreview struct {
	Artist string         `json:"artist"`
	Name   string         `json:"name"`
	Tracks []PreviewTrack `json:"tracks"`
}

// SearchResult is a normalized row from the library search webhook.
type SearchResult struct {
	Artist     string   `json:"artist"`
	Title      string   `json:"title"`
	UploadedAt string   `json:"uploaded_at,omitempty"`
	Playlists  []string `json:"playlists,omitempty"`
}

// PlaylistOptions is the fixed list of destination playlists for the add-to-playlist flow.
var PlaylistOptions = []string{
	"Afrobeat & Highlife",
	"Beats",
	"Bossa Nova",
	"Brazilian Music",
	"Disco Dancefloor",
	"DNB",
	"Downtempo Trip-hop",
	"Funk & Rock",
	"Hip-hop",
	"House Chill",
	"House Dancefloor",
	"Jazz Classic",
	"Jazz Funk",
	"Latin Music",
	"Morning Chill",
	"Neo Soul",
	"Reggae",
	"RNB Mood",
	"Soul Oldies",
}

// ValidPlaylist reports whether name is one of the fixed playlist options.
func ValidPlaylist(name string) bool {
	for _, option := range PlaylistOptions {
		if option == name {
			return true
		}
	}
	return false
}

// ValidRating reports whether value is a legal 1-5 star rating.
func ValidRating(value int) bool {
	return value >= 1 && value <= 5
}
