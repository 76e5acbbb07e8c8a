package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niprobin/digging/internal/shared"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

func newRelayTest(t *testing.T, status int) (*RelayClient, *[]recordedRequest) {
	t.Helper()

	var recorded []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded = append(recorded, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			body:   string(body),
		})
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	cfg := shared.WebhooksConfig{
		AddToPlaylist: server.URL + "/add-to-playlist",
		TrackChecked:  server.URL + "/track-checked",
		AlbumAction:   server.URL + "/album-webhook",
		AddAlbum:      server.URL + "/add-album",
		AddSong:       server.URL + "/add-song",
		Download:      server.URL + "/download",
		LibrarySearch: server.URL + "/search-library",
		RatePerSecond: 0,
	}

	return NewRelayClient(cfg, server.Client(), nil), &recorded
}

func TestRelayClient(t *testing.T) {
	ctx := context.Background()

	t.Run("add to playlist sends the catalog payload", func(t *testing.T) {
		client, recorded := newRelayTest(t, http.StatusOK)

		if err := client.AddTrackToPlaylist(ctx, "4uLU6hMCjMI", "Neo Soul"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := (*recorded)[0]
		if req.path != "/add-to-playlist" {
			t.Errorf("unexpected path %q", req.path)
		}

		var payload map[string]string
		if err := json.Unmarshal([]byte(req.body), &payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload["spotify_id"] != "4uLU6hMCjMI" || payload["playlist"] != "Neo Soul" {
			t.Errorf("unexpected payload %v", payload)
		}
		if payload["checked"] != "TRUE" || payload["liked"] != "TRUE" {
			t.Errorf("expected uppercase flag strings, got %v", payload)
		}
	})

	t.Run("rejects unknown playlists without a request", func(t *testing.T) {
		client, recorded := newRelayTest(t, http.StatusOK)

		err := client.AddTrackToPlaylist(ctx, "id", "Polka Hits")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if len(*recorded) != 0 {
			t.Error("expected no webhook call for an invalid playlist")
		}
	})

	t.Run("rejects a missing spotify id", func(t *testing.T) {
		client, _ := newRelayTest(t, http.StatusOK)

		if err := client.MarkTrackChecked(ctx, ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("rating carries the star value", func(t *testing.T) {
		client, recorded := newRelayTest(t, http.StatusOK)

		if err := client.RateAlbum(ctx, "Ceu - Vagarosa", 4); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var payload map[string]any
		if err := json.Unmarshal([]byte((*recorded)[0].body), &payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload["release_name"] != "Ceu - Vagarosa" {
			t.Errorf("unexpected release name %v", payload["release_name"])
		}
		if payload["rating"] != float64(4) {
			t.Errorf("expected rating 4, got %v", payload["rating"])
		}
		if payload["checked"] != true || payload["liked"] != true {
			t.Errorf("expected checked and liked, got %v", payload)
		}
	})

	t.Run("dismiss sends a null rating", func(t *testing.T) {
		client, recorded := newRelayTest(t, http.StatusOK)

		if err := client.DismissAlbum(ctx, "Ceu - Vagarosa"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var payload map[string]any
		if err := json.Unmarshal([]byte((*recorded)[0].body), &payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		rating, present := payload["rating"]
		if !present || rating != nil {
			t.Errorf("expected explicit null rating, got %v (present=%v)", rating, present)
		}
		if payload["liked"] != false {
			t.Errorf("expected liked false, got %v", payload["liked"])
		}
	})

	t.Run("quick add payloads use the legacy field names", func(t *testing.T) {
		client, recorded := newRelayTest(t, http.StatusOK)

		if err := client.AddAlbum(ctx, "Ceu - Vagarosa"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := client.AddSong(ctx, "Malemolencia", "Brazilian Music"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var album map[string]string
		if err := json.Unmarshal([]byte((*recorded)[0].body), &album); err != nil {
			t.Fatalf("failed to decode album payload: %v", err)
		}
		if album["album-name"] != "Ceu - Vagarosa" {
			t.Errorf("unexpected album payload %v", album)
		}

		var song map[string]string
		if err := json.Unmarshal([]byte((*recorded)[1].body), &song); err != nil {
			t.Fatalf("failed to decode song payload: %v", err)
		}
		if song["song-name"] != "Malemolencia" || song["playlist"] != "Brazilian Music" {
			t.Errorf("unexpected song payload %v", song)
		}
	})

	t.Run("non-2xx surfaces as a webhook failure", func(t *testing.T) {
		client, _ := newRelayTest(t, http.StatusBadGateway)

		err := client.MarkTrackChecked(ctx, "id")
		if !errors.Is(err, shared.ErrWebhookFailed) {
			t.Errorf("expected ErrWebhookFailed, got %v", err)
		}
	})

	t.Run("download trigger is a get", func(t *testing.T) {
		client, recorded := newRelayTest(t, http.StatusOK)

		if err := client.TriggerDownload(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if (*recorded)[0].method != http.MethodGet {
			t.Errorf("expected GET, got %s", (*recorded)[0].method)
		}
	})
}

func TestLibrarySearch(t *testing.T) {
	ctx := context.Background()

	newSearchClient := func(t *testing.T, response string) *RelayClient {
		t.Helper()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(response))
		}))
		t.Cleanup(server.Close)
		return NewRelayClient(shared.WebhooksConfig{LibrarySearch: server.URL}, server.Client(), nil)
	}

	t.Run("normalizes candidate keys", func(t *testing.T) {
		client := newSearchClient(t, `[
			{"Title":"Malemolencia","Artists":"Ceu","Playlists":"Brazilian Music, Morning Chill","uploaded_at":"2024-05-01"},
			{"track":"Untitledish","curator":"Benji","playlist":["Beats",""]},
			{"junk":true}
		]`)

		results, err := client.LibrarySearch(ctx, "ceu")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}

		first := results[0]
		if first.Title != "Malemolencia" || first.Artist != "Ceu" {
			t.Errorf("unexpected first result %+v", first)
		}
		if len(first.Playlists) != 2 || first.Playlists[1] != "Morning Chill" {
			t.Errorf("expected comma split playlists, got %v", first.Playlists)
		}
		if first.UploadedAt != "2024-05-01" {
			t.Errorf("unexpected uploadedAt %q", first.UploadedAt)
		}

		second := results[1]
		if second.Artist != "Benji" {
			t.Errorf("expected curator fallback, got %q", second.Artist)
		}
		if len(second.Playlists) != 1 || second.Playlists[0] != "Beats" {
			t.Errorf("expected blank playlist entries dropped, got %v", second.Playlists)
		}
	})

	t.Run("treats a single object as one row", func(t *testing.T) {
		client := newSearchClient(t, `{"title":"Solo","artist":"One"}`)

		results, err := client.LibrarySearch(ctx, "solo")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].Title != "Solo" {
			t.Errorf("unexpected results %v", results)
		}
	})

	t.Run("rejects a blank query", func(t *testing.T) {
		client := newSearchClient(t, `[]`)
		if _, err := client.LibrarySearch(ctx, "   "); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
