package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
)

// Stream is a resolved playable URL with display metadata.
type Stream struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// PreviewResolver resolves stream URLs, album track lists, and catalog
// searches for the in-page audio preview.
type PreviewResolver struct {
	cfg        shared.PreviewConfig
	httpClient *http.Client
	logger     *log.Logger
}

// NewPreviewResolver creates a resolver for the configured preview endpoints.
func NewPreviewResolver(cfg shared.PreviewConfig, httpClient *http.Client, logger *log.Logger) *PreviewResolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &PreviewResolver{cfg: cfg, httpClient: httpClient, logger: logger}
}

// Enabled reports whether previews are switched on in config.
func (r *PreviewResolver) Enabled() bool {
	return r.cfg.Enabled
}

// getJSON fetches a URL and decodes its JSON body into a generic value.
func (r *PreviewResolver) getJSON(ctx context.Context, rawURL string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d: %w", resp.StatusCode, shared.ErrAPIRequest)
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return decoded, nil
}

// ResolveStream fetches a playable URL for a track. trackID may be empty when
// the entry carries no catalog id; the upstream then matches on artist+title.
func (r *PreviewResolver) ResolveStream(ctx context.Context, artist, track, trackID string) (*Stream, error) {
	if !r.cfg.Enabled {
		return nil, shared.ErrStreamingDisabled
	}
	if track == "" {
		return nil, fmt.Errorf("track title: %w", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("artist", artist)
	params.Set("track", track)
	if trackID != "" {
		params.Set("track_id", trackID)
	}

	decoded, err := r.getJSON(ctx, r.cfg.TrackURLWebhook+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("stream lookup failed: %w", err)
	}

	record, _ := decoded.(map[string]any)
	streamURL := pickString(record, "stream_url", "url", "streamUrl", "streamURL")
	if streamURL == "" {
		return nil, fmt.Errorf("track %q: %w", track, shared.ErrNoStreamURL)
	}

	stream := &Stream{
		URL:    streamURL,
		Title:  pickString(record, "title", "name"),
		Artist: pickString(record, "artist", "artistName"),
	}
	if stream.Title == "" {
		stream.Title = track
	}
	if stream.Artist == "" {
		stream.Artist = artist
	}

	return stream, nil
}

// AlbumTracks fetches and normalizes the track list for a release name. The
// name's trailing " - " segment is taken as the album title, the rest as the
// artist.
func (r *PreviewResolver) AlbumTracks(ctx context.Context, releaseName string) (*models.AlbumPreview, error) {
	if !r.cfg.Enabled {
		return nil, shared.ErrStreamingDisabled
	}
	if releaseName == "" {
		return nil, fmt.Errorf("release name: %w", shared.ErrMissingArgument)
	}

	artist, title := shared.SplitReleaseName(releaseName)

	params := url.Values{}
	params.Set("album", title)
	params.Set("artist", artist)

	decoded, err := r.getJSON(ctx, r.cfg.AlbumTracksWebhook+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("album lookup failed: %w", err)
	}

	record, _ := decoded.(map[string]any)
	preview := &models.AlbumPreview{
		Artist: pickString(record, "artist"),
		Name:   pickString(record, "album", "name"),
	}
	if preview.Artist == "" {
		preview.Artist = artist
	}
	if preview.Name == "" {
		preview.Name = title
	}

	if rows, ok := record["tracks"].([]any); ok {
		for _, row := range rows {
			if track := normalizePreviewTrack(row, preview.Artist); track != nil {
				preview.Tracks = append(preview.Tracks, *track)
			}
		}
	}

	return preview, nil
}

// Search runs a text search against the mirror hosts in order, returning the
// first host's results. Every host failing yields the last error wrapped in
// [shared.ErrAllHostsFailed].
func (r *PreviewResolver) Search(ctx context.Context, query string) ([]models.PreviewTrack, error) {
	if !r.cfg.Enabled {
		return nil, shared.ErrStreamingDisabled
	}

	normalized := shared.NormalizeSearchQuery(query)
	if normalized == "" {
		return nil, fmt.Errorf("search query: %w", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("q", normalized)
	params.Set("type", "track")

	var lastErr error
	for _, host := range r.cfg.SearchHosts {
		decoded, err := r.getJSON(ctx, strings.TrimSuffix(host, "/")+"/search?"+params.Encode())
		if err != nil {
			r.logger.Warnf("search host %s failed: %v", host, err)
			lastErr = err
			continue
		}
		return extractSearchTracks(decoded), nil
	}

	return nil, fmt.Errorf("all %d search hosts failed: %v: %w", len(r.cfg.SearchHosts), lastErr, shared.ErrAllHostsFailed)
}

// SearchPageURL builds the external search page fallback for a query.
func (r *PreviewResolver) SearchPageURL(query string) string {
	return r.cfg.SearchPageBase + url.PathEscape(shared.NormalizeSearchQuery(query))
}

// extractSearchTracks pulls the track list out of a mirror response, which is
// either a bare array or an object with a "tracks" key.
func extractSearchTracks(decoded any) []models.PreviewTrack {
	var rows []any
	switch value := decoded.(type) {
	case []any:
		rows = value
	case map[string]any:
		rows, _ = value["tracks"].([]any)
	}

	tracks := make([]models.PreviewTrack, 0, len(rows))
	for _, row := range rows {
		if track := normalizePreviewTrack(row, ""); track != nil {
			tracks = append(tracks, *track)
		}
	}
	return tracks
}

// normalizePreviewTrack maps one raw catalog row into a PreviewTrack. Rows
// without a usable title are dropped.
func normalizePreviewTrack(raw any, fallbackArtist string) *models.PreviewTrack {
	record, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	title := pickString(record, "title", "name")
	if title == "" {
		return nil
	}

	artist := pickString(record, "artist", "artistName")
	if artist == "" {
		artist = fallbackArtist
	}

	track := &models.PreviewTrack{
		Title:       title,
		Artist:      artist,
		ID:          pickID(record, "id"),
		StreamURL:   pickString(record, "stream_url", "url", "streamUrl", "streamURL"),
		Duration:    pickNumber(record, "duration"),
		TrackNumber: pickNumber(record, "trackNumber", "track_number"),
		Explicit:    pickBool(record, "explicit"),
	}

	return track
}

// pickID accepts string or numeric identifiers.
func pickID(record map[string]any, key string) string {
	switch value := record[key].(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return ""
}

// pickNumber accepts numbers or numeric strings, returning 0 otherwise.
func pickNumber(record map[string]any, keys ...string) int {
	for _, key := range keys {
		switch value := record[key].(type) {
		case float64:
			return int(value)
		case string:
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				if parsed, err := strconv.Atoi(trimmed); err == nil {
					return parsed
				}
			}
		}
	}
	return 0
}

// pickBool accepts booleans or "true"/"false" strings.
func pickBool(record map[string]any, key string) bool {
	switch value := record[key].(type) {
	case bool:
		return value
	case string:
		return strings.EqualFold(strings.TrimSpace(value), "true")
	}
	return false
}
