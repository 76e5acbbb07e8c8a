package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niprobin/digging/internal/shared"
)

func newTestClient(t *testing.T, body string, status int) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	cfg := shared.SourcesConfig{TracksURL: server.URL, AlbumsURL: server.URL}
	client := NewClient(cfg, server.Client(), nil)
	client.now = func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)
	}
	return client
}

func TestTrackEntries(t *testing.T) {
	t.Run("normalizes sentinel values", func(t *testing.T) {
		body := `[{"spotify_id":"#N/A","curator":" N/A ","date":"05/03/2024","artist":"","track":"Malemolencia","checked":"TRUE","liked":"false"}]`
		client := newTestClient(t, body, http.StatusOK)

		entries := client.TrackEntries(context.Background())
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}

		entry := entries[0]
		if entry.SpotifyID != "" {
			t.Errorf("expected sentinel spotify id to clear, got %q", entry.SpotifyID)
		}
		if entry.SpotifyURL != "" {
			t.Errorf("expected no spotify url, got %q", entry.SpotifyURL)
		}
		if entry.Curator != "Unknown curator" {
			t.Errorf("expected curator fallback, got %q", entry.Curator)
		}
		if entry.Artist != "Unknown artist" {
			t.Errorf("expected artist fallback, got %q", entry.Artist)
		}
		if !entry.Checked {
			t.Error("expected checked flag to parse case insensitively")
		}
		if entry.Liked {
			t.Error("expected liked to be false")
		}
	})

	t.Run("builds spotify backed identity", func(t *testing.T) {
		body := `[{"spotify_id":"4uLU6hMCjMI75M1A2tKUQC","curator":"Gilles","date":"05/03/2024","artist":"Ceu","track":"Malemolencia"}]`
		client := newTestClient(t, body, http.StatusOK)

		entries := client.TrackEntries(context.Background())
		if entries[0].ID != "4uLU6hMCjMI75M1A2tKUQC" {
			t.Errorf("expected spotify id as identity, got %q", entries[0].ID)
		}
		if entries[0].SpotifyURL != "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC" {
			t.Errorf("unexpected spotify url %q", entries[0].SpotifyURL)
		}
	})

	t.Run("suffixes duplicate identities", func(t *testing.T) {
		body := `[
			{"spotify_id":"dup","curator":"A","date":"01/01/2024","artist":"X","track":"One"},
			{"spotify_id":"dup","curator":"A","date":"01/01/2024","artist":"X","track":"One"},
			{"spotify_id":"dup","curator":"A","date":"01/01/2024","artist":"X","track":"One"}
		]`
		client := newTestClient(t, body, http.StatusOK)

		entries := client.TrackEntries(context.Background())
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}

		ids := make(map[string]bool)
		for _, entry := range entries {
			if ids[entry.ID] {
				t.Fatalf("duplicate id %q", entry.ID)
			}
			ids[entry.ID] = true
		}
		if !ids["dup"] || !ids["dup-1"] || !ids["dup-2"] {
			t.Errorf("expected occurrence suffixes, got %v", ids)
		}
	})

	t.Run("sorts most recent first", func(t *testing.T) {
		body := `[
			{"spotify_id":"old","curator":"A","date":"01/01/2023","artist":"X","track":"Old"},
			{"spotify_id":"new","curator":"A","date":"01/01/2024","artist":"X","track":"New"}
		]`
		client := newTestClient(t, body, http.StatusOK)

		entries := client.TrackEntries(context.Background())
		if entries[0].ID != "new" || entries[1].ID != "old" {
			t.Errorf("expected descending order, got %q then %q", entries[0].ID, entries[1].ID)
		}
	})

	t.Run("degrades to empty slice on server error", func(t *testing.T) {
		client := newTestClient(t, "oops", http.StatusInternalServerError)

		entries := client.TrackEntries(context.Background())
		if entries == nil || len(entries) != 0 {
			t.Errorf("expected empty slice, got %v", entries)
		}
	})

	t.Run("degrades to empty slice on malformed body", func(t *testing.T) {
		client := newTestClient(t, "{not json", http.StatusOK)

		entries := client.TrackEntries(context.Background())
		if entries == nil || len(entries) != 0 {
			t.Errorf("expected empty slice, got %v", entries)
		}
	})
}

func TestAlbumEntries(t *testing.T) {
	t.Run("normalizes a full row", func(t *testing.T) {
		body := `[{"release_name":"Ceu - Vagarosa","added_date":"12/07/2024","release_date":"2009","cover_url":"https://img.example/cover.jpg","spotify_url":"https://open.spotify.com/album/abc","checked":"false","liked":"TRUE"}]`
		client := newTestClient(t, body, http.StatusOK)

		entries := client.AlbumEntries(context.Background())
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}

		entry := entries[0]
		if entry.ID != "https://open.spotify.com/album/abc" {
			t.Errorf("expected spotify url as identity, got %q", entry.ID)
		}
		if entry.Name != "Ceu - Vagarosa" {
			t.Errorf("unexpected name %q", entry.Name)
		}
		if entry.ReleaseDate != "2009" {
			t.Errorf("unexpected release date %q", entry.ReleaseDate)
		}
		if entry.Checked || !entry.Liked {
			t.Errorf("unexpected flags checked=%v liked=%v", entry.Checked, entry.Liked)
		}
	})

	t.Run("falls back to composite identity", func(t *testing.T) {
		body := `[{"release_name":"Hidden Gem","added_date":"01/02/2024","spotify_url":"N/A"}]`
		client := newTestClient(t, body, http.StatusOK)

		entries := client.AlbumEntries(context.Background())
		if entries[0].ID != "Hidden Gem-01/02/2024-0" {
			t.Errorf("unexpected composite id %q", entries[0].ID)
		}
		if entries[0].SpotifyURL != "" {
			t.Errorf("expected sentinel spotify url to clear, got %q", entries[0].SpotifyURL)
		}
	})

	t.Run("defaults an unnamed release", func(t *testing.T) {
		body := `[{"release_name":"  ","added_date":"01/02/2024"}]`
		client := newTestClient(t, body, http.StatusOK)

		entries := client.AlbumEntries(context.Background())
		if entries[0].Name != "Untitled release" {
			t.Errorf("expected name fallback, got %q", entries[0].Name)
		}
	})
}

func TestCurators(t *testing.T) {
	body := `[
		{"spotify_id":"a","curator":"Gilles","date":"03/01/2024","artist":"X","track":"One"},
		{"spotify_id":"b","curator":"Benji","date":"02/01/2024","artist":"X","track":"Two"},
		{"spotify_id":"c","curator":"Gilles","date":"01/01/2024","artist":"X","track":"Three"}
	]`
	client := newTestClient(t, body, http.StatusOK)

	curators := Curators(client.TrackEntries(context.Background()))
	if len(curators) != 2 {
		t.Fatalf("expected 2 curators, got %v", curators)
	}
	if curators[0] != "Gilles" || curators[1] != "Benji" {
		t.Errorf("expected first seen order, got %v", curators)
	}
}
