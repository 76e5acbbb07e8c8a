package sheets

import (
	"testing"
	"time"
)

func TestParseSheetDate(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)

	t.Run("parses day month year with slashes", func(t *testing.T) {
		got := ParseSheetDate("05/03/2024", now)
		want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("parses day month year with dashes", func(t *testing.T) {
		got := ParseSheetDate("25-12-2023", now)
		want := time.Date(2023, time.December, 25, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("expands two digit years", func(t *testing.T) {
		got := ParseSheetDate("05/03/24", now)
		if got.Year() != 2024 {
			t.Errorf("expected year 2024, got %d", got.Year())
		}
	})

	t.Run("falls back to common layouts", func(t *testing.T) {
		got := ParseSheetDate("March 5, 2024", now)
		want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("falls back to now on garbage", func(t *testing.T) {
		got := ParseSheetDate("not a date", now)
		if !got.Equal(now) {
			t.Errorf("expected now fallback, got %v", got)
		}
	})

	t.Run("falls back to now on empty input", func(t *testing.T) {
		got := ParseSheetDate("", now)
		if !got.Equal(now) {
			t.Errorf("expected now fallback, got %v", got)
		}
	})
}
