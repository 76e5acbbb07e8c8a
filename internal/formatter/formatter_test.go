package formatter

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/niprobin/digging/internal/models"
	tu "github.com/niprobin/digging/internal/testing"
)

func historyFixture() []models.HistoryEntry {
	return []models.HistoryEntry{
		{
			LikeableItem: models.LikeableItem{
				ID:       "t-1",
				Type:     models.LikeableTrack,
				Title:    "Malemolência",
				Subtitle: "Céu",
				URL:      "https://open.spotify.com/track/t-1",
			},
			LikedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
			Active:  true,
		},
		{
			LikeableItem: models.LikeableItem{
				ID:       "a-1",
				Type:     models.LikeableAlbum,
				Title:    "Mordechai",
				Subtitle: "Khruangbin",
			},
			LikedAt:   time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
			UnlikedAt: time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC),
		},
	}
}

func trackFixture() []models.TrackEntry {
	return []models.TrackEntry{
		{
			ID:         "t-1",
			Curator:    "Robin",
			Artist:     "Céu",
			Title:      "Malemolência",
			AddedAt:    time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			SpotifyURL: "https://open.spotify.com/track/t-1",
		},
		{
			ID:      "t-2",
			Curator: "Mara",
			Artist:  "Arthur Verocai",
			Title:   "Na Boca do Sol",
			AddedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestHistoryToCSV(t *testing.T) {
	data, err := HistoryToCSV(historyFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse generated CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][6] != "Status" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][2] != "Malemolência" || records[1][6] != "liked" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][1] != "album" || records[2][6] != "unliked" {
		t.Errorf("unexpected second row: %v", records[2])
	}
}

func TestHistoryToMarkdown(t *testing.T) {
	t.Run("includes counts and entries", func(t *testing.T) {
		data, err := HistoryToMarkdown(historyFixture(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		content := string(data)

		if !strings.Contains(content, "# Liked history") {
			t.Error("missing title")
		}
		if !strings.Contains(content, "**Entries**: 2 (1 liked, 1 unliked)") {
			t.Error("missing entry counts")
		}
		if !strings.Contains(content, "1. Céu - Malemolência (track, liked 5th March 2024)") {
			t.Errorf("missing first entry, got:\n%s", content)
		}
		if !strings.Contains(content, "~unliked~") {
			t.Error("missing unliked marker")
		}
	})

	t.Run("references the cover image when given", func(t *testing.T) {
		data, err := HistoryToMarkdown(historyFixture(), "cover.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), "![Cover](cover.jpg)") {
			t.Error("missing cover reference")
		}
	})
}

func TestHistoryToText(t *testing.T) {
	data, err := HistoryToText(historyFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "Liked history: 2 entries") {
		t.Error("missing header line")
	}
	if !strings.Contains(content, "1. Céu - Malemolência [liked]") {
		t.Errorf("missing first line, got:\n%s", content)
	}
	if !strings.Contains(content, "2. Khruangbin - Mordechai [unliked]") {
		t.Errorf("missing second line, got:\n%s", content)
	}
}

func TestTracksToCSV(t *testing.T) {
	data, err := TracksToCSV(trackFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse generated CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[1][1] != "Robin" || records[1][4] != "2024-03-05" {
		t.Errorf("unexpected first row: %v", records[1])
	}
}

func TestWriteHistoryCSV(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "export")

	result, err := WriteHistoryCSV(historyFixture(), base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.EntriesFile != base+"_entries.csv" {
		t.Errorf("unexpected entries file: %s", result.EntriesFile)
	}

	metaData, err := os.ReadFile(result.MetadataFile)
	if err != nil {
		t.Fatalf("failed to read metadata: %v", err)
	}
	var meta map[string]any
	if err := json.Unmarshal(metaData, &meta); err != nil {
		t.Fatalf("failed to parse metadata: %v", err)
	}
	if meta["total"] != float64(2) || meta["liked"] != float64(1) {
		t.Errorf("unexpected metadata: %v", meta)
	}
}

func TestWriteHistoryMarkdown(t *testing.T) {
	t.Run("writes the README", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "export")

		result, err := WriteHistoryMarkdown(historyFixture(), dir, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Files) != 1 || !strings.HasSuffix(result.Files[0], "README.md") {
			t.Errorf("unexpected files: %v", result.Files)
		}
		if result.CoverImage != "" {
			t.Errorf("expected no cover image, got %s", result.CoverImage)
		}
	})

	t.Run("downloads and saves the cover image", func(t *testing.T) {
		imageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte("jpeg-bytes"))
		}))
		defer imageSrv.Close()

		dir := filepath.Join(t.TempDir(), "export")
		result, err := WriteHistoryMarkdown(historyFixture(), dir, imageSrv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.CoverImage == "" {
			t.Fatal("expected a saved cover image")
		}
		saved, err := os.ReadFile(result.CoverImage)
		if err != nil {
			t.Fatalf("failed to read cover: %v", err)
		}
		if string(saved) != "jpeg-bytes" {
			t.Errorf("unexpected cover contents: %q", saved)
		}

		readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
		if err != nil {
			t.Fatalf("failed to read README: %v", err)
		}
		if !strings.Contains(string(readme), "![Cover](cover.jpg)") {
			t.Error("README does not reference the cover")
		}
	})
}

func TestWriteHistoryText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")

	written, err := WriteHistoryText(historyFixture(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != path {
		t.Errorf("unexpected path: %s", written)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if !strings.Contains(string(data), "Malemolência") {
		t.Error("file missing expected content")
	}

	t.Run("empty path falls back to the default name", func(t *testing.T) {
		wd := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, wd)

		written, err := WriteHistoryText(historyFixture(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if written != "history.txt" {
			t.Errorf("unexpected path: %s", written)
		}
		tu.AssertFileExists(t, written)
	})
}

func TestWriteTracksCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.csv")

	written, err := WriteTracksCSV(trackFixture(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if !strings.Contains(string(data), "Na Boca do Sol") {
		t.Error("file missing expected content")
	}
}

func TestDownloadImage(t *testing.T) {
	t.Run("empty url", func(t *testing.T) {
		if _, err := DownloadImage(""); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		if _, err := DownloadImage(srv.URL); err == nil {
			t.Error("expected an error")
		}
	})
}
