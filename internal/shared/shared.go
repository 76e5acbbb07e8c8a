// package shared defines shared helpers
package shared

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// NewFileLogger creates a [log.Logger] writing to the given file path, creating parent directories as needed.
//
// Used when stderr belongs to the terminal UI.
func NewFileLogger(path string) (*log.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewLogger(f), nil
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel sets the [log.Level] for the given [log.Logger].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}

// NormalizeSearchQuery strips diacritics and collapses runs of non-alphanumeric characters to single spaces.
//
// Mirror catalog search endpoints tokenize on plain ASCII words, so "Céu – Malemolência" becomes "Ceu Malemolencia".
func NormalizeSearchQuery(query string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), query)
	if err != nil {
		stripped = query
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}

	return b.String()
}

// SplitReleaseName splits a raw "Artist - Title" release label into its parts.
//
// The last "-" separated segment is the title; everything before it is the artist.
// Labels without a separator yield an empty artist.
func SplitReleaseName(name string) (artist, title string) {
	parts := []string{}
	for _, part := range strings.Split(name, "-") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	if len(parts) <= 1 {
		return "", strings.TrimSpace(name)
	}

	title = parts[len(parts)-1]
	artist = strings.Join(parts[:len(parts)-1], " - ")
	return artist, title
}

// SpotifyTrackURL builds the public track page URL for a Spotify catalog id.
func SpotifyTrackURL(id string) string {
	return "https://open.spotify.com/track/" + id
}

// ExtractSpotifyID recovers the catalog id from a Spotify track URL.
//
// Returns an empty string when the URL does not contain a track segment.
func ExtractSpotifyID(url string) string {
	_, after, found := strings.Cut(url, "/track/")
	if !found {
		return ""
	}

	id, _, _ := strings.Cut(after, "?")
	return id
}

// FormatRelativeDate renders a date as a short human label relative to now ("Today", "Yesterday", "5 days ago", ...).
func FormatRelativeDate(date, now time.Time) string {
	diff := now.Sub(date)
	day := 24 * time.Hour

	switch {
	case diff < day:
		return "Today"
	case diff < 2*day:
		return "Yesterday"
	}

	days := int(diff / day)
	if days < 30 {
		return fmt.Sprintf("%d days ago", days)
	}

	months := (days + 15) / 30
	if months < 12 {
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}

	years := (months + 6) / 12
	if years == 1 {
		return "1 year ago"
	}
	return fmt.Sprintf("%d years ago", years)
}

// FormatOrdinalDate renders a date as "5th March 2024".
func FormatOrdinalDate(date time.Time) string {
	day := date.Day()
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s %s %d", day, suffix, date.Month().String(), date.Year())
}

// FormatDuration renders a track duration in seconds as M:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
