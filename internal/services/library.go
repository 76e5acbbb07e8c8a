package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
)

// LibrarySearch queries the library automation for tracks matching query and
// normalizes whatever row shape comes back.
func (c *RelayClient) LibrarySearch(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query: %w", shared.ErrMissingArgument)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	payload, err := json.Marshal(map[string]string{"search_query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.LibrarySearch, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("library search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("library search returned %d: %w", resp.StatusCode, shared.ErrWebhookFailed)
	}

	var raw any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	// Single-object responses are treated as a one-row list.
	rows, ok := raw.([]any)
	if !ok {
		rows = []any{raw}
	}

	results := make([]models.SearchResult, 0, len(rows))
	for _, row := range rows {
		if result := normalizeSearchRow(row); result != nil {
			results = append(results, *result)
		}
	}

	return results, nil
}

// normalizeSearchRow maps one raw library row into a SearchResult. Rows with
// neither a title nor an artist are dropped.
func normalizeSearchRow(raw any) *models.SearchResult {
	record, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	lower := make(map[string]any, len(record))
	for key, value := range record {
		lower[strings.ToLower(key)] = value
	}

	title := pickString(lower, "title", "track", "text")
	artist := pickString(lower, "artist", "artists", "curator")
	if title == "" && artist == "" {
		return nil
	}
	if title == "" {
		title = "Untitled track"
	}
	if artist == "" {
		artist = "Unknown artist"
	}

	result := &models.SearchResult{
		Artist:     artist,
		Title:      title,
		UploadedAt: pickString(lower, "uploaded_at", "uploadedat"),
	}

	switch playlists := firstOf(lower, "playlists", "playlist").(type) {
	case []any:
		for _, p := range playlists {
			if name, ok := p.(string); ok && strings.TrimSpace(name) != "" {
				result.Playlists = append(result.Playlists, strings.TrimSpace(name))
			}
		}
	case string:
		for _, name := range strings.Split(playlists, ",") {
			if name = strings.TrimSpace(name); name != "" {
				result.Playlists = append(result.Playlists, name)
			}
		}
	}

	return result
}

// pickString returns the first candidate key holding a non-blank string.
func pickString(record map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := record[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// firstOf returns the first candidate key present in the record.
func firstOf(record map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := record[key]; ok {
			return value
		}
	}
	return nil
}
