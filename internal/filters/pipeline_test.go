package filters

import (
	"testing"
	"time"

	"github.com/niprobin/digging/internal/models"
)

func trackFixture(id, curator string, addedAt time.Time, checked, liked bool) models.TrackEntry {
	return models.TrackEntry{
		ID:      id,
		Curator: curator,
		Artist:  "Artist",
		Title:   "Title " + id,
		AddedAt: addedAt,
		Checked: checked,
		Liked:   liked,
	}
}

func TestFilterTracks(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	daysAgo := func(days int) time.Time { return now.AddDate(0, 0, -days) }

	entries := []models.TrackEntry{
		trackFixture("fresh", "Gilles", daysAgo(1), false, false),
		trackFixture("listened", "Gilles", daysAgo(2), true, false),
		trackFixture("liked", "Benji", daysAgo(3), false, true),
		trackFixture("stale", "Gilles", daysAgo(40), false, false),
	}

	t.Run("defaults hide listened and stale entries", func(t *testing.T) {
		got := FilterTracks(entries, TrackQuery{State: DefaultState(), Now: now})
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
		if got[0].ID != "fresh" || got[1].ID != "liked" {
			t.Errorf("unexpected order: %q, %q", got[0].ID, got[1].ID)
		}
	})

	t.Run("dismissals win over everything", func(t *testing.T) {
		got := FilterTracks(entries, TrackQuery{
			State:     DefaultState(),
			Dismissed: map[string]bool{"fresh": true},
			Now:       now,
		})
		for _, entry := range got {
			if entry.ID == "fresh" {
				t.Error("expected dismissed entry to be hidden")
			}
		}
	})

	t.Run("locally checked entries hide while hideChecked is on", func(t *testing.T) {
		got := FilterTracks(entries, TrackQuery{
			State:          DefaultState(),
			LocallyChecked: map[string]bool{"fresh": true},
			Now:            now,
		})
		if len(got) != 1 || got[0].ID != "liked" {
			t.Errorf("expected only the liked entry, got %v", got)
		}
	})

	t.Run("curator and window combine", func(t *testing.T) {
		state := DefaultState()
		state.SetCurator("Gilles")
		state.SetTimeWindow(All)
		state.HideChecked = false

		got := FilterTracks(entries, TrackQuery{State: state, Now: now})
		if len(got) != 3 {
			t.Fatalf("expected 3 Gilles entries, got %d", len(got))
		}
		for _, entry := range got {
			if entry.Curator != "Gilles" {
				t.Errorf("unexpected curator %q", entry.Curator)
			}
		}
	})

	t.Run("liked only respects local overrides", func(t *testing.T) {
		state := DefaultState()
		state.ShowLikedOnly = true

		got := FilterTracks(entries, TrackQuery{
			State: state,
			IsLiked: func(id string, fallback bool) bool {
				if id == "fresh" {
					return true
				}
				return fallback
			},
			Now: now,
		})
		if len(got) != 2 {
			t.Fatalf("expected 2 liked entries, got %d", len(got))
		}
		if got[0].ID != "fresh" || got[1].ID != "liked" {
			t.Errorf("unexpected entries %q, %q", got[0].ID, got[1].ID)
		}
	})
}

func albumFixture(id, name string, addedAt time.Time, checked, liked bool) models.AlbumEntry {
	return models.AlbumEntry{ID: id, Name: name, AddedAt: addedAt, Checked: checked, Liked: liked}
}

func TestFilterAlbums(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	daysAgo := func(days int) time.Time { return now.AddDate(0, 0, -days) }

	entries := []models.AlbumEntry{
		albumFixture("a", "Vagarosa", daysAgo(1), false, false),
		albumFixture("b", "Black Focus", daysAgo(2), false, false),
		albumFixture("c", "Already Liked", daysAgo(3), false, true),
		albumFixture("d", "Already Checked", daysAgo(4), true, false),
		albumFixture("e", "Old Gold", daysAgo(60), false, false),
	}

	t.Run("source liked and checked albums never surface", func(t *testing.T) {
		got := FilterAlbums(entries, AlbumQuery{TimeWindow: All, Now: now})
		if len(got) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(got))
		}
		for _, entry := range got {
			if entry.ID == "c" || entry.ID == "d" {
				t.Errorf("expected %q to be hidden", entry.ID)
			}
		}
	})

	t.Run("bookmarks float to the front in order", func(t *testing.T) {
		got := FilterAlbums(entries, AlbumQuery{
			TimeWindow: All,
			Bookmarked: map[string]bool{"e": true, "b": true},
			Now:        now,
		})
		if len(got) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(got))
		}
		if got[0].ID != "b" || got[1].ID != "e" || got[2].ID != "a" {
			t.Errorf("unexpected order %q, %q, %q", got[0].ID, got[1].ID, got[2].ID)
		}
	})

	t.Run("bookmark filter hides everything else", func(t *testing.T) {
		got := FilterAlbums(entries, AlbumQuery{
			TimeWindow:         All,
			ShowBookmarkedOnly: true,
			Bookmarked:         map[string]bool{"b": true},
			Now:                now,
		})
		if len(got) != 1 || got[0].ID != "b" {
			t.Errorf("expected only the bookmarked entry, got %v", got)
		}
	})

	t.Run("search matches name substrings case insensitively", func(t *testing.T) {
		got := FilterAlbums(entries, AlbumQuery{TimeWindow: All, Search: "  VAGA ", Now: now})
		if len(got) != 1 || got[0].ID != "a" {
			t.Errorf("expected the Vagarosa entry, got %v", got)
		}
	})

	t.Run("window trims old entries", func(t *testing.T) {
		got := FilterAlbums(entries, AlbumQuery{TimeWindow: Month, Now: now})
		for _, entry := range got {
			if entry.ID == "e" {
				t.Error("expected the sixty day old entry to be hidden")
			}
		}
	})
}
