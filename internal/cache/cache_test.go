package cache

import (
	"testing"
	"time"
)

func TestCache(t *testing.T) {
	t.Run("round trips within the ttl", func(t *testing.T) {
		c := New(time.Minute)
		c.Set("tracks", "tracks", []string{"a", "b"})

		value, ok := c.Get("tracks")
		if !ok {
			t.Fatal("expected a cache hit")
		}
		if items := value.([]string); len(items) != 2 {
			t.Errorf("unexpected value %v", items)
		}
	})

	t.Run("entries expire", func(t *testing.T) {
		c := New(time.Minute)
		base := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return base }
		c.Set("tracks", "tracks", "snapshot")

		c.now = func() time.Time { return base.Add(2 * time.Minute) }
		if _, ok := c.Get("tracks"); ok {
			t.Error("expected the entry to expire")
		}
	})

	t.Run("invalidate drops only the tag", func(t *testing.T) {
		c := New(time.Minute)
		c.Set("tracks", "tracks", 1)
		c.Set("tracks-page-2", "tracks", 2)
		c.Set("albums", "albums", 3)

		if dropped := c.Invalidate("tracks"); dropped != 2 {
			t.Errorf("expected 2 dropped entries, got %d", dropped)
		}
		if _, ok := c.Get("albums"); !ok {
			t.Error("expected the other tag to survive")
		}
	})

	t.Run("concurrent readers share one fill", func(t *testing.T) {
		c := New(time.Minute)

		var calls int
		entered := make(chan struct{})
		release := make(chan struct{})
		fill := func() string {
			calls++
			close(entered)
			<-release
			return "snapshot"
		}

		first := make(chan string)
		go func() { first <- GetOrFill(c, "tracks", "tracks", fill) }()
		<-entered

		// The first reader is now blocked inside its fetch; a second reader
		// for the same key must wait on it rather than fetch again.
		second := make(chan string)
		go func() {
			second <- GetOrFill(c, "tracks", "tracks", func() string {
				t.Error("second reader ran its own fill")
				return ""
			})
		}()

		close(release)
		if got := <-first; got != "snapshot" {
			t.Errorf("first reader got %q", got)
		}
		if got := <-second; got != "snapshot" {
			t.Errorf("second reader got %q", got)
		}
		if calls != 1 {
			t.Errorf("expected a single upstream fetch, got %d", calls)
		}
	})

	t.Run("getOrFill fills once per ttl", func(t *testing.T) {
		c := New(time.Minute)
		calls := 0
		fill := func() int {
			calls++
			return 42
		}

		if got := GetOrFill(c, "n", "numbers", fill); got != 42 {
			t.Errorf("expected 42, got %d", got)
		}
		if got := GetOrFill(c, "n", "numbers", fill); got != 42 {
			t.Errorf("expected 42, got %d", got)
		}
		if calls != 1 {
			t.Errorf("expected a single fill, got %d", calls)
		}
	})
}
