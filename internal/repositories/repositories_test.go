package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
	tu "github.com/niprobin/digging/internal/testing"
)

func likeFixture(id string) models.LikeableItem {
	return models.LikeableItem{
		ID:       id,
		Type:     models.LikeableTrack,
		Title:    "Malemolencia",
		Subtitle: "Ceu",
		URL:      "https://open.spotify.com/track/" + id,
	}
}

func TestLikeRepository(t *testing.T) {
	t.Run("records and retrieves a like", func(t *testing.T) {
		repo := NewLikeRepository(tu.MustOpenDB(t))
		likedAt := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

		if err := repo.MarkLiked(likeFixture("abc"), likedAt); err != nil {
			t.Fatalf("failed to mark liked: %v", err)
		}

		entry, err := repo.Get("abc")
		if err != nil {
			t.Fatalf("failed to get entry: %v", err)
		}
		if !entry.Active {
			t.Error("expected entry to be active")
		}
		if entry.Title != "Malemolencia" || entry.Subtitle != "Ceu" {
			t.Errorf("unexpected item fields %q / %q", entry.Title, entry.Subtitle)
		}
		if !entry.LikedAt.Equal(likedAt) {
			t.Errorf("expected likedAt %v, got %v", likedAt, entry.LikedAt)
		}
	})

	t.Run("rejects an item without identity", func(t *testing.T) {
		repo := NewLikeRepository(tu.MustOpenDB(t))
		if err := repo.MarkLiked(models.LikeableItem{Title: "No ID"}, time.Now()); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("unlike archives in place", func(t *testing.T) {
		repo := NewLikeRepository(tu.MustOpenDB(t))
		likedAt := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
		unlikedAt := likedAt.Add(time.Hour)

		if err := repo.MarkLiked(likeFixture("abc"), likedAt); err != nil {
			t.Fatalf("failed to mark liked: %v", err)
		}
		if err := repo.MarkUnliked("abc", unlikedAt); err != nil {
			t.Fatalf("failed to mark unliked: %v", err)
		}

		entry, err := repo.Get("abc")
		if err != nil {
			t.Fatalf("failed to get entry: %v", err)
		}
		if entry.Active {
			t.Error("expected entry to be archived")
		}
		if !entry.UnlikedAt.Equal(unlikedAt) {
			t.Errorf("expected unlikedAt %v, got %v", unlikedAt, entry.UnlikedAt)
		}
	})

	t.Run("reliking keeps the original liked_at", func(t *testing.T) {
		repo := NewLikeRepository(tu.MustOpenDB(t))
		first := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

		if err := repo.MarkLiked(likeFixture("abc"), first); err != nil {
			t.Fatalf("failed to mark liked: %v", err)
		}
		if err := repo.MarkUnliked("abc", first.Add(time.Hour)); err != nil {
			t.Fatalf("failed to mark unliked: %v", err)
		}
		if err := repo.MarkLiked(likeFixture("abc"), first.Add(2*time.Hour)); err != nil {
			t.Fatalf("failed to re-like: %v", err)
		}

		entry, err := repo.Get("abc")
		if err != nil {
			t.Fatalf("failed to get entry: %v", err)
		}
		if !entry.Active {
			t.Error("expected entry to be active again")
		}
		if !entry.LikedAt.Equal(first) {
			t.Errorf("expected original likedAt %v, got %v", first, entry.LikedAt)
		}
		if !entry.UnlikedAt.IsZero() {
			t.Errorf("expected unlikedAt cleared, got %v", entry.UnlikedAt)
		}

		history, err := repo.History(false)
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		if len(history) != 1 {
			t.Errorf("expected a single history row, got %d", len(history))
		}
	})

	t.Run("unliking an unknown id is a no-op", func(t *testing.T) {
		repo := NewLikeRepository(tu.MustOpenDB(t))
		if err := repo.MarkUnliked("ghost", time.Now()); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("history sorts most recent first and filters archived", func(t *testing.T) {
		repo := NewLikeRepository(tu.MustOpenDB(t))
		base := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

		for i, id := range []string{"first", "second", "third"} {
			if err := repo.MarkLiked(likeFixture(id), base.Add(time.Duration(i)*time.Hour)); err != nil {
				t.Fatalf("failed to mark liked: %v", err)
			}
		}
		if err := repo.MarkUnliked("second", base.Add(4*time.Hour)); err != nil {
			t.Fatalf("failed to mark unliked: %v", err)
		}

		all, err := repo.History(false)
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(all))
		}
		if all[0].ID != "third" || all[2].ID != "first" {
			t.Errorf("unexpected order: %q first, %q last", all[0].ID, all[2].ID)
		}

		active, err := repo.History(true)
		if err != nil {
			t.Fatalf("failed to list active history: %v", err)
		}
		if len(active) != 2 {
			t.Fatalf("expected 2 active rows, got %d", len(active))
		}
		for _, entry := range active {
			if entry.ID == "second" {
				t.Error("expected archived entry to be filtered")
			}
		}
	})

	t.Run("get and delete of a missing row return not found", func(t *testing.T) {
		repo := NewLikeRepository(tu.MustOpenDB(t))
		if _, err := repo.Get("ghost"); !errors.Is(err, shared.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound, got %v", err)
		}
		if err := repo.Delete("ghost"); !errors.Is(err, shared.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound, got %v", err)
		}
	})
}

func TestKVRepository(t *testing.T) {
	t.Run("round trips a snapshot", func(t *testing.T) {
		repo := NewKVRepository(tu.MustOpenDB(t))

		if err := repo.Set("filters", `{"timeWindow":"month"}`); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		value, err := repo.Get("filters")
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if value != `{"timeWindow":"month"}` {
			t.Errorf("unexpected value %q", value)
		}
	})

	t.Run("set replaces the previous snapshot", func(t *testing.T) {
		repo := NewKVRepository(tu.MustOpenDB(t))

		if err := repo.Set("filters", "old"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}
		if err := repo.Set("filters", "new"); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}

		value, err := repo.Get("filters")
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if value != "new" {
			t.Errorf("expected overwrite, got %q", value)
		}
	})

	t.Run("missing namespace returns not found", func(t *testing.T) {
		repo := NewKVRepository(tu.MustOpenDB(t))
		if _, err := repo.Get("ghost"); !errors.Is(err, shared.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound, got %v", err)
		}
	})

	t.Run("delete then namespaces", func(t *testing.T) {
		repo := NewKVRepository(tu.MustOpenDB(t))

		for _, namespace := range []string{"bookmarks", "filters", "ratings"} {
			if err := repo.Set(namespace, "{}"); err != nil {
				t.Fatalf("failed to set %q: %v", namespace, err)
			}
		}
		if err := repo.Delete("filters"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		namespaces, err := repo.Namespaces()
		if err != nil {
			t.Fatalf("failed to list namespaces: %v", err)
		}
		if len(namespaces) != 2 || namespaces[0] != "bookmarks" || namespaces[1] != "ratings" {
			t.Errorf("unexpected namespaces %v", namespaces)
		}
	})
}
