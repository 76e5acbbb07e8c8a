package shared

import (
	"testing"
	"time"
)

func TestNormalizeSearchQuery(t *testing.T) {
	tc := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "plain words",
			query: "Jungle Keep Moving",
			want:  "Jungle Keep Moving",
		},
		{
			name:  "diacritics stripped",
			query: "Céu Malemolência",
			want:  "Ceu Malemolencia",
		},
		{
			name:  "punctuation collapsed",
			query: "Artist - Album (Deluxe)",
			want:  "Artist Album Deluxe",
		},
		{
			name:  "leading and trailing separators",
			query: "...What's Going On?",
			want:  "What s Going On",
		},
		{
			name:  "empty",
			query: "",
			want:  "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSearchQuery(tt.query)
			if got != tt.want {
				t.Errorf("NormalizeSearchQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitReleaseName(t *testing.T) {
	tc := []struct {
		name       string
		input      string
		wantArtist string
		wantTitle  string
	}{
		{
			name:       "artist and title",
			input:      "Nala Sinephro - Endlessness",
			wantArtist: "Nala Sinephro",
			wantTitle:  "Endlessness",
		},
		{
			name:       "multiple separators keep all but last as artist",
			input:      "Jean-Michel - Blais - Aubades",
			wantArtist: "Jean-Michel - Blais",
			wantTitle:  "Aubades",
		},
		{
			name:       "no separator",
			input:      "Endlessness",
			wantArtist: "",
			wantTitle:  "Endlessness",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			artist, title := SplitReleaseName(tt.input)
			if artist != tt.wantArtist || title != tt.wantTitle {
				t.Errorf("SplitReleaseName(%q) = (%q, %q), want (%q, %q)", tt.input, artist, title, tt.wantArtist, tt.wantTitle)
			}
		})
	}
}

func TestExtractSpotifyID(t *testing.T) {
	t.Run("plain track URL", func(t *testing.T) {
		got := ExtractSpotifyID("https://open.spotify.com/track/3n3Ppam7vgaVa1iaRUc9Lp")
		if got != "3n3Ppam7vgaVa1iaRUc9Lp" {
			t.Errorf("expected id, got %q", got)
		}
	})

	t.Run("query string stripped", func(t *testing.T) {
		got := ExtractSpotifyID("https://open.spotify.com/track/3n3Ppam7vgaVa1iaRUc9Lp?si=abc")
		if got != "3n3Ppam7vgaVa1iaRUc9Lp" {
			t.Errorf("expected id without query, got %q", got)
		}
	})

	t.Run("not a track URL", func(t *testing.T) {
		if got := ExtractSpotifyID("https://open.spotify.com/album/xyz"); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tc := []struct {
		name string
		date time.Time
		want string
	}{
		{"same day", now.Add(-2 * time.Hour), "Today"},
		{"previous day", now.Add(-30 * time.Hour), "Yesterday"},
		{"five days", now.AddDate(0, 0, -5), "5 days ago"},
		{"two months", now.AddDate(0, 0, -60), "2 months ago"},
		{"one year", now.AddDate(-1, 0, 0), "1 year ago"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelativeDate(tt.date, now); got != tt.want {
				t.Errorf("FormatRelativeDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatOrdinalDate(t *testing.T) {
	tc := []struct {
		day  int
		want string
	}{
		{1, "1st March 2024"},
		{2, "2nd March 2024"},
		{3, "3rd March 2024"},
		{4, "4th March 2024"},
		{11, "11th March 2024"},
		{13, "13th March 2024"},
		{21, "21st March 2024"},
		{22, "22nd March 2024"},
	}

	for _, tt := range tc {
		date := time.Date(2024, 3, tt.day, 0, 0, 0, 0, time.UTC)
		if got := FormatOrdinalDate(date); got != tt.want {
			t.Errorf("FormatOrdinalDate(day=%d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{213, "3:33"},
		{-5, "0:00"},
	}

	for _, tt := range tc {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
