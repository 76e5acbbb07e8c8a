package filters

import (
	"strings"
	"time"

	"github.com/niprobin/digging/internal/models"
)

// LikedFunc resolves an entry's liked status against local overrides.
//
// The fallback is the entry's own liked flag; an override only wins when the
// user explicitly changed the status after the snapshot was taken.
type LikedFunc func(id string, fallback bool) bool

// TrackQuery drives the track inbox pipeline.
type TrackQuery struct {
	State          State
	Dismissed      map[string]bool
	LocallyChecked map[string]bool
	IsLiked        LikedFunc
	Now            time.Time
}

// FilterTracks applies the track inbox pipeline in order: dismissals,
// listened entries, curator, time window, then liked-only. Entry order is
// preserved.
func FilterTracks(entries []models.TrackEntry, query TrackQuery) []models.TrackEntry {
	if query.Now.IsZero() {
		query.Now = time.Now()
	}

	matches := make([]models.TrackEntry, 0, len(entries))
	for _, entry := range entries {
		if query.Dismissed[entry.ID] {
			continue
		}
		checked := entry.Checked || query.LocallyChecked[entry.ID]
		if query.State.HideChecked && checked {
			continue
		}
		if query.State.Curator != "" && entry.Curator != query.State.Curator {
			continue
		}
		if !WithinWindow(entry.AddedAt, query.State.TimeWindow, query.Now) {
			continue
		}
		liked := entry.Liked
		if query.IsLiked != nil {
			liked = query.IsLiked(entry.ID, entry.Liked) || entry.Liked
		}
		if query.State.ShowLikedOnly && !liked {
			continue
		}
		matches = append(matches, entry)
	}
	return matches
}

// AlbumQuery drives the album inbox pipeline.
type AlbumQuery struct {
	TimeWindow         TimeWindow
	ShowLikedOnly      bool
	ShowBookmarkedOnly bool
	Search             string
	Dismissed          map[string]bool
	Bookmarked         map[string]bool
	IsLiked            LikedFunc
	Now                time.Time
}

// FilterAlbums applies the album inbox pipeline. Albums already liked or
// checked at the source never surface. Unless the bookmark filter is active,
// bookmarked albums float to the front while both partitions keep their
// relative order.
func FilterAlbums(entries []models.AlbumEntry, query AlbumQuery) []models.AlbumEntry {
	if query.Now.IsZero() {
		query.Now = time.Now()
	}
	search := strings.ToLower(strings.TrimSpace(query.Search))

	matches := make([]models.AlbumEntry, 0, len(entries))
	for _, entry := range entries {
		if query.Dismissed[entry.ID] {
			continue
		}
		if entry.Liked || entry.Checked {
			continue
		}
		if !WithinWindow(entry.AddedAt, query.TimeWindow, query.Now) {
			continue
		}
		liked := entry.Liked
		if query.IsLiked != nil {
			liked = query.IsLiked(entry.ID, entry.Liked) || entry.Liked
		}
		if query.ShowLikedOnly && !liked {
			continue
		}
		if query.ShowBookmarkedOnly && !query.Bookmarked[entry.ID] {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(entry.Name), search) {
			continue
		}
		matches = append(matches, entry)
	}

	if query.ShowBookmarkedOnly || len(query.Bookmarked) == 0 {
		return matches
	}

	prioritized := make([]models.AlbumEntry, 0, len(matches))
	others := make([]models.AlbumEntry, 0, len(matches))
	for _, entry := range matches {
		if query.Bookmarked[entry.ID] {
			prioritized = append(prioritized, entry)
		} else {
			others = append(others, entry)
		}
	}
	return append(prioritized, others...)
}
