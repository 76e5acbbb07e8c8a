package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
	"golang.org/x/time/rate"
)

// RelayClient forwards user actions to the automation webhooks.
type RelayClient struct {
	cfg        shared.WebhooksConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewRelayClient creates a relay client for the configured webhook targets.
func NewRelayClient(cfg shared.WebhooksConfig, httpClient *http.Client, logger *log.Logger) *RelayClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}

	return &RelayClient{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// post sends a JSON payload to a webhook target, honoring the rate limiter.
func (c *RelayClient) post(ctx context.Context, url string, payload any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d: %w", resp.StatusCode, shared.ErrWebhookFailed)
	}

	return nil
}

// AddTrackToPlaylist relays a track into one of the fixed playlists and marks
// it checked and liked upstream.
func (c *RelayClient) AddTrackToPlaylist(ctx context.Context, spotifyID, playlist string) error {
	if spotifyID == "" {
		return fmt.Errorf("spotify id: %w", shared.ErrMissingArgument)
	}
	if !models.ValidPlaylist(playlist) {
		return fmt.Errorf("unknown playlist %q: %w", playlist, shared.ErrInvalidArgument)
	}

	return c.post(ctx, c.cfg.AddToPlaylist, map[string]string{
		"spotify_id": spotifyID,
		"playlist":   playlist,
		"checked":    "TRUE",
		"liked":      "TRUE",
	})
}

// AddNamedTrackToPlaylist relays a track known only by artist and title, for
// entries that carry no catalog id.
func (c *RelayClient) AddNamedTrackToPlaylist(ctx context.Context, artist, track, playlist string) error {
	if track == "" {
		return fmt.Errorf("track title: %w", shared.ErrMissingArgument)
	}
	if !models.ValidPlaylist(playlist) {
		return fmt.Errorf("unknown playlist %q: %w", playlist, shared.ErrInvalidArgument)
	}

	return c.post(ctx, c.cfg.AddToPlaylist, map[string]string{
		"playlist": playlist,
		"artist":   artist,
		"track":    track,
		"checked":  "TRUE",
		"liked":    "TRUE",
	})
}

// MarkTrackChecked relays a dismissal for a track.
func (c *RelayClient) MarkTrackChecked(ctx context.Context, spotifyID string) error {
	if spotifyID == "" {
		return fmt.Errorf("spotify id: %w", shared.ErrMissingArgument)
	}

	return c.post(ctx, c.cfg.TrackChecked, map[string]string{
		"spotify_id": spotifyID,
		"checked":    "TRUE",
	})
}

// albumActionPayload is the album webhook shape. Rating is null for a
// dismissal, which the automation flow distinguishes from a zero.
type albumActionPayload struct {
	ReleaseName string `json:"release_name"`
	Checked     bool   `json:"checked"`
	Liked       bool   `json:"liked"`
	Rating      *int   `json:"rating"`
}

// RateAlbum relays a star rating, marking the album checked and liked.
func (c *RelayClient) RateAlbum(ctx context.Context, releaseName string, rating int) error {
	if releaseName == "" {
		return fmt.Errorf("release name: %w", shared.ErrMissingArgument)
	}
	if !models.ValidRating(rating) {
		return fmt.Errorf("rating %d out of range: %w", rating, shared.ErrInvalidArgument)
	}

	return c.post(ctx, c.cfg.AlbumAction, albumActionPayload{
		ReleaseName: releaseName,
		Checked:     true,
		Liked:       true,
		Rating:      &rating,
	})
}

// DismissAlbum relays a dismissal, marking the album checked but not liked.
func (c *RelayClient) DismissAlbum(ctx context.Context, releaseName string) error {
	if releaseName == "" {
		return fmt.Errorf("release name: %w", shared.ErrMissingArgument)
	}

	return c.post(ctx, c.cfg.AlbumAction, albumActionPayload{
		ReleaseName: releaseName,
		Checked:     true,
		Liked:       false,
		Rating:      nil,
	})
}

// AddAlbum relays a quick-add of an album to the listening list.
func (c *RelayClient) AddAlbum(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("album name: %w", shared.ErrMissingArgument)
	}

	return c.post(ctx, c.cfg.AddAlbum, map[string]string{"album-name": name})
}

// AddSong relays a quick-add of a song into a playlist.
func (c *RelayClient) AddSong(ctx context.Context, name, playlist string) error {
	if name == "" {
		return fmt.Errorf("song name: %w", shared.ErrMissingArgument)
	}
	if !models.ValidPlaylist(playlist) {
		return fmt.Errorf("unknown playlist %q: %w", playlist, shared.ErrInvalidArgument)
	}

	return c.post(ctx, c.cfg.AddSong, map[string]string{
		"song-name": name,
		"playlist":  playlist,
	})
}

// TriggerDownload fires the download automation with a plain GET.
func (c *RelayClient) TriggerDownload(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Download, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download trigger failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download trigger returned %d: %w", resp.StatusCode, shared.ErrWebhookFailed)
	}

	return nil
}
