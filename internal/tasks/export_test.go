package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
	tu "github.com/niprobin/digging/internal/testing"
)

func historyFixture() []models.HistoryEntry {
	return []models.HistoryEntry{
		{
			LikeableItem: models.LikeableItem{ID: "t-1", Type: models.LikeableTrack, Title: "Malemolência", Subtitle: "Céu"},
			LikedAt:      time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
			Active:       true,
		},
		{
			LikeableItem: models.LikeableItem{ID: "a-1", Type: models.LikeableAlbum, Title: "Mordechai", Subtitle: "Khruangbin"},
			LikedAt:      time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func drainProgress() (chan ProgressUpdate, func() []ProgressUpdate) {
	prog := make(chan ProgressUpdate, 64)
	return prog, func() []ProgressUpdate {
		close(prog)
		var updates []ProgressUpdate
		for update := range prog {
			updates = append(updates, update)
		}
		return updates
	}
}

func TestExport(t *testing.T) {
	t.Run("writes every requested format and a manifest", func(t *testing.T) {
		engine := NewEngine(nil, &tu.MockHistorySource{Entries: historyFixture()})
		dir := filepath.Join(t.TempDir(), "export")
		prog, collect := drainProgress()

		result, err := engine.Export(context.Background(), prog, []string{"csv", "markdown", "txt"}, ExportOpts{OutputDir: dir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.SuccessfulExports != 3 || result.FailedExports != 0 {
			t.Errorf("expected 3 successes, got %d/%d", result.SuccessfulExports, result.FailedExports)
		}
		if result.EntryCount != 2 {
			t.Errorf("expected 2 entries, got %d", result.EntryCount)
		}

		manifestData := tu.MustReadFile(t, result.ManifestPath)
		var manifest map[string]any
		if err := json.Unmarshal([]byte(manifestData), &manifest); err != nil {
			t.Fatalf("failed to parse manifest: %v", err)
		}
		if manifest["successful"] != float64(3) {
			t.Errorf("unexpected manifest: %v", manifest)
		}

		tu.AssertDirExists(t, result.OutputDirectory)
		for _, res := range result.Results {
			for _, file := range res.Files {
				tu.AssertFileExists(t, file)
			}
		}

		if updates := collect(); len(updates) == 0 {
			t.Error("expected progress updates")
		}
	})

	t.Run("unknown format fails its job only", func(t *testing.T) {
		engine := NewEngine(nil, &tu.MockHistorySource{Entries: historyFixture()})
		dir := filepath.Join(t.TempDir(), "export")

		result, err := engine.Export(context.Background(), nil, []string{"txt", "xml"}, ExportOpts{OutputDir: dir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.SuccessfulExports != 1 || result.FailedExports != 1 {
			t.Errorf("expected one success and one failure, got %d/%d", result.SuccessfulExports, result.FailedExports)
		}
		for _, res := range result.Results {
			if res.Format == "xml" && !errors.Is(res.Error, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", res.Error)
			}
		}
	})

	t.Run("active only narrows the entry set", func(t *testing.T) {
		engine := NewEngine(nil, &tu.MockHistorySource{Entries: historyFixture()})
		dir := filepath.Join(t.TempDir(), "export")

		result, err := engine.Export(context.Background(), nil, []string{"txt"}, ExportOpts{OutputDir: dir, ActiveOnly: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.EntryCount != 1 {
			t.Errorf("expected 1 entry, got %d", result.EntryCount)
		}
	})

	t.Run("missing formats", func(t *testing.T) {
		engine := NewEngine(nil, &tu.MockHistorySource{Entries: historyFixture()})
		if _, err := engine.Export(context.Background(), nil, nil, ExportOpts{}); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("history read failure", func(t *testing.T) {
		engine := NewEngine(nil, &tu.MockHistorySource{Err: errors.New("locked")})
		dir := filepath.Join(t.TempDir(), "export")

		if _, err := engine.Export(context.Background(), nil, []string{"txt"}, ExportOpts{OutputDir: dir}); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("dumps inboxes and history", func(t *testing.T) {
		sheets := &tu.MockSheetSource{
			Tracks: []models.TrackEntry{{ID: "t-1", Artist: "Céu", Title: "Malemolência"}},
			Albums: []models.AlbumEntry{{ID: "a-1", Name: "Céu - Vagarosa"}},
		}
		engine := NewEngine(sheets, &tu.MockHistorySource{Entries: historyFixture()})
		path := filepath.Join(t.TempDir(), "snapshot.json")
		prog, collect := drainProgress()

		result, err := engine.Snapshot(context.Background(), prog, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.TrackCount != 1 || result.AlbumCount != 1 || result.LikeCount != 2 {
			t.Errorf("unexpected counts: %+v", result)
		}

		data := tu.MustReadFile(t, path)
		var snapshot map[string]any
		if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
			t.Fatalf("failed to parse snapshot: %v", err)
		}
		if snapshot["generated_at"] == "" {
			t.Error("missing generated_at")
		}
		if tracks, _ := snapshot["tracks"].([]any); len(tracks) != 1 {
			t.Errorf("unexpected tracks: %v", snapshot["tracks"])
		}

		if updates := collect(); len(updates) == 0 {
			t.Error("expected progress updates")
		}
	})

	t.Run("requires a sheet source", func(t *testing.T) {
		engine := NewEngine(nil, &tu.MockHistorySource{})
		if _, err := engine.Snapshot(context.Background(), nil, ""); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
