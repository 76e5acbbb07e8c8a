// package testing holds shared test doubles and helpers used across packages.
package testing

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
)

// MockSheetSource is a test double for the sheet-backed inbox sources.
type MockSheetSource struct {
	Tracks []models.TrackEntry
	Albums []models.AlbumEntry
}

func (m *MockSheetSource) TrackEntries(ctx context.Context) []models.TrackEntry {
	return m.Tracks
}

func (m *MockSheetSource) AlbumEntries(ctx context.Context) []models.AlbumEntry {
	return m.Albums
}

// MockHistorySource is a test double for the like history sources.
type MockHistorySource struct {
	Entries []models.HistoryEntry
	Err     error
}

func (m *MockHistorySource) History(activeOnly bool) ([]models.HistoryEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if !activeOnly {
		return m.Entries, nil
	}
	active := make([]models.HistoryEntry, 0, len(m.Entries))
	for _, entry := range m.Entries {
		if entry.Active {
			active = append(active, entry)
		}
	}
	return active, nil
}

var (
	errWriteFailed   = errors.New("write failed")
	errWriteExceeded = errors.New("write limit exceeded")
	errReadFailed    = errors.New("read failed")
)

// FWriter rejects every Write. Use it to exercise output error paths.
type FWriter struct{}

func (f *FWriter) Write([]byte) (int, error) { return 0, errWriteFailed }

// LimitedWriter forwards writes to target until maxWrites is reached, then
// fails. Exercises partial-output error paths like a trailing newline write.
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func (l *LimitedWriter) Write(p []byte) (int, error) {
	if l.written >= l.maxWrites {
		return 0, errWriteExceeded
	}
	l.written++
	return l.target.Write(p)
}

// MockRoundTripper substitutes a canned response (or error) for any request
// made through an http.Client transport.
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser is a response body whose reads fail but whose Close succeeds.
type FCloser struct{}

func (f *FCloser) Read([]byte) (int, error) { return 0, errReadFailed }

func (f *FCloser) Close() error { return nil }

// MustOpenDB opens a migrated in-memory database and closes it with the test.
func MustOpenDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
