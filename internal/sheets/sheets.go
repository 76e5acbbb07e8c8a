package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
)

// Client fetches the track and album sheets and normalizes their rows.
type Client struct {
	tracksURL  string
	albumsURL  string
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
}

// NewClient creates a sheet client for the configured source URLs.
//
// A nil httpClient falls back to [http.DefaultClient]; a nil logger to the
// shared default.
func NewClient(cfg shared.SourcesConfig, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		tracksURL:  cfg.TracksURL,
		albumsURL:  cfg.AlbumsURL,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

type rawTrackRow struct {
	SpotifyID string `json:"spotify_id"`
	Curator   string `json:"curator"`
	Date      string `json:"date"`
	Artist    string `json:"artist"`
	Track     string `json:"track"`
	Checked   string `json:"checked"`
	Liked     string `json:"liked"`
}

type rawAlbumRow struct {
	ReleaseName string `json:"release_name"`
	AddedDate   string `json:"added_date"`
	ReleaseDate string `json:"release_date"`
	CoverURL    string `json:"cover_url"`
	SpotifyURL  string `json:"spotify_url"`
	Checked     string `json:"checked"`
	Liked       string `json:"liked"`
}

// sanitizeValue trims a raw sheet cell and maps the sheet's absent sentinels to "".
func sanitizeValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	switch strings.ToUpper(trimmed) {
	case "N/A", "#N/A":
		return ""
	}
	return trimmed
}

// toBool reports whether a raw sheet cell holds a truthy flag.
func toBool(value string) bool {
	return strings.EqualFold(sanitizeValue(value), "true")
}

// fetchRows GETs a JSON array of rows, returning nil on any failure.
func fetchRows[T any](ctx context.Context, c *Client, url, label string) []T {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warnf("failed to build %s request: %v", label, err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("failed to fetch %s: %v", label, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warnf("%s responded with %d", label, resp.StatusCode)
		return nil
	}

	var rows []T
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		c.logger.Warnf("failed to decode %s: %v", label, err)
		return nil
	}

	return rows
}

// dedupeID returns baseID suffixed with the per-fetch occurrence count for repeats.
func dedupeID(occurrences map[string]int, baseID string) string {
	seen := occurrences[baseID]
	occurrences[baseID] = seen + 1
	if seen == 0 {
		return baseID
	}
	return fmt.Sprintf("%s-%d", baseID, seen)
}

// TrackEntries fetches and normalizes the curated tracks sheet.
//
// Failures degrade to an empty slice; the result is sorted most recent first.
func (c *Client) TrackEntries(ctx context.Context) []models.TrackEntry {
	rows := fetchRows[rawTrackRow](ctx, c, c.tracksURL, "tracks sheet")
	if rows == nil {
		return []models.TrackEntry{}
	}

	now := c.now()
	occurrences := make(map[string]int, len(rows))
	entries := make([]models.TrackEntry, 0, len(rows))

	for index, row := range rows {
		spotifyID := sanitizeValue(row.SpotifyID)
		curator := sanitizeValue(row.Curator)
		if curator == "" {
			curator = "Unknown curator"
		}
		artist := sanitizeValue(row.Artist)
		if artist == "" {
			artist = "Unknown artist"
		}
		title := sanitizeValue(row.Track)
		if title == "" {
			title = "Untitled"
		}

		baseID := spotifyID
		if baseID == "" {
			date := row.Date
			if date == "" {
				date = fmt.Sprintf("%d", index)
			}
			baseID = fmt.Sprintf("%s-%s-%s-%d", curator, title, date, index)
		}

		entry := models.TrackEntry{
			ID:        dedupeID(occurrences, baseID),
			Curator:   curator,
			Artist:    artist,
			Title:     title,
			AddedAt:   ParseSheetDate(row.Date, now),
			Checked:   toBool(row.Checked),
			Liked:     toBool(row.Liked),
			SpotifyID: spotifyID,
		}
		if spotifyID != "" {
			entry.SpotifyURL = shared.SpotifyTrackURL(spotifyID)
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AddedAt.After(entries[j].AddedAt)
	})

	return entries
}

// AlbumEntries fetches and normalizes the album releases sheet.
//
// Failures degrade to an empty slice; the result is sorted most recent first.
func (c *Client) AlbumEntries(ctx context.Context) []models.AlbumEntry {
	rows := fetchRows[rawAlbumRow](ctx, c, c.albumsURL, "albums sheet")
	if rows == nil {
		return []models.AlbumEntry{}
	}

	now := c.now()
	occurrences := make(map[string]int, len(rows))
	entries := make([]models.AlbumEntry, 0, len(rows))

	for index, row := range rows {
		spotifyURL := sanitizeValue(row.SpotifyURL)
		name := sanitizeValue(row.ReleaseName)
		if name == "" {
			name = "Untitled release"
		}

		baseID := spotifyURL
		if baseID == "" {
			date := row.AddedDate
			if date == "" {
				date = fmt.Sprintf("%d", index)
			}
			baseID = fmt.Sprintf("%s-%s-%d", name, date, index)
		}

		entries = append(entries, models.AlbumEntry{
			ID:          dedupeID(occurrences, baseID),
			Name:        name,
			AddedAt:     ParseSheetDate(row.AddedDate, now),
			ReleaseDate: sanitizeValue(row.ReleaseDate),
			CoverURL:    sanitizeValue(row.CoverURL),
			SpotifyURL:  spotifyURL,
			Checked:     toBool(row.Checked),
			Liked:       toBool(row.Liked),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AddedAt.After(entries[j].AddedAt)
	})

	return entries
}

// Curators returns the unique curator labels in first-seen order.
func Curators(entries []models.TrackEntry) []string {
	seen := make(map[string]bool, len(entries))
	curators := []string{}
	for _, entry := range entries {
		if entry.Curator == "" || seen[entry.Curator] {
			continue
		}
		seen[entry.Curator] = true
		curators = append(curators, entry.Curator)
	}
	return curators
}
