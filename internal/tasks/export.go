package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/niprobin/digging/internal/formatter"
	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
)

// ExportOpts contains configuration for history exports.
type ExportOpts struct {
	OutputDir     string // Base output directory (default: history_export_{epoch})
	ActiveOnly    bool   // Export only currently liked entries
	NumWorkers    int    // Concurrent workers (default: 2)
	CoverImageURL string // Optional cover image for the Markdown format
}

// FormatResult records the outcome of exporting a single format.
type FormatResult struct {
	Format  string
	Success bool
	Files   []string
	Error   error
}

// ExportResult summarizes a history export run.
type ExportResult struct {
	TotalFormats      int
	SuccessfulExports int
	FailedExports     int
	EntryCount        int
	OutputDirectory   string
	ManifestPath      string
	Results           []FormatResult
}

type exportJob struct {
	format  string
	entries []models.HistoryEntry
}

// Export writes the like history in each requested format concurrently and
// writes a manifest summarizing the run.
//
// Unknown formats fail their own job; the rest of the run continues.
func (e *Engine) Export(ctx context.Context, prog chan<- ProgressUpdate, formats []string, opts ExportOpts) (*ExportResult, error) {
	if e.history == nil {
		return nil, fmt.Errorf("%w: history source not initialized", shared.ErrServiceUnavailable)
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no formats requested: %w", shared.ErrMissingArgument)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("history_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 2
	}
	if opts.NumWorkers > len(formats) {
		opts.NumWorkers = len(formats)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	e.sendProgress(prog, fetchHistoryUpdate(1, len(formats)))
	entries, err := e.history.History(opts.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	result := &ExportResult{
		TotalFormats:    len(formats),
		EntryCount:      len(entries),
		OutputDirectory: opts.OutputDir,
		Results:         make([]FormatResult, 0, len(formats)),
	}

	jobs := make(chan exportJob, len(formats))
	results := make(chan FormatResult, len(formats))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	for i, format := range formats {
		e.sendProgress(prog, exportingUpdate(i+1, len(formats), format))
		jobs <- exportJob{format: format, entries: entries}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(formats), res.Format, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(formats), res.Format, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker drains the jobs channel, writing one format per job.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- FormatResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportFormat(job, opts)
	}
}

// exportFormat writes the history in a single format.
func exportFormat(job exportJob, opts ExportOpts) FormatResult {
	result := FormatResult{
		Format: job.format,
		Files:  []string{},
	}

	switch job.format {
	case "csv":
		base := filepath.Join(opts.OutputDir, "history")
		csvRes, err := formatter.WriteHistoryCSV(job.entries, base)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.EntriesFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, "markdown")
		mdRes, err := formatter.WriteHistoryMarkdown(job.entries, outputDir, opts.CoverImageURL)
		if err != nil {
			result.Error = fmt.Errorf("Markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		path := filepath.Join(opts.OutputDir, "history.txt")
		written, err := formatter.WriteHistoryText(job.entries, path)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true

	default:
		result.Error = fmt.Errorf("unknown format %q: %w", job.format, shared.ErrInvalidArgument)
	}

	return result
}

// manifestEntry is the serialized form of one format result.
type manifestEntry struct {
	Format  string   `json:"format"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// writeManifest records the run summary next to the exported files.
func writeManifest(result *ExportResult, path string) error {
	entries := make([]manifestEntry, 0, len(result.Results))
	for _, res := range result.Results {
		entry := manifestEntry{
			Format:  res.Format,
			Success: res.Success,
			Files:   res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		entries = append(entries, entry)
	}

	payload := struct {
		GeneratedAt string          `json:"generated_at"`
		EntryCount  int             `json:"entry_count"`
		Successful  int             `json:"successful"`
		Failed      int             `json:"failed"`
		Results     []manifestEntry `json:"results"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		EntryCount:  result.EntryCount,
		Successful:  result.SuccessfulExports,
		Failed:      result.FailedExports,
		Results:     entries,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// SnapshotResult describes a written state snapshot.
type SnapshotResult struct {
	Path       string
	TrackCount int
	AlbumCount int
	LikeCount  int
}

// snapshotData is the serialized snapshot shape.
type snapshotData struct {
	GeneratedAt string                `json:"generated_at"`
	Tracks      []models.TrackEntry   `json:"tracks"`
	Albums      []models.AlbumEntry   `json:"albums"`
	History     []models.HistoryEntry `json:"history"`
}

// Snapshot dumps the current inboxes and like history to a single JSON file.
//
// Defaults to digging_snapshot_{epoch}.json when no path is given.
func (e *Engine) Snapshot(ctx context.Context, prog chan<- ProgressUpdate, path string) (*SnapshotResult, error) {
	if e.sheets == nil {
		return nil, fmt.Errorf("%w: sheet source not initialized", shared.ErrServiceUnavailable)
	}
	if e.history == nil {
		return nil, fmt.Errorf("%w: history source not initialized", shared.ErrServiceUnavailable)
	}

	if path == "" {
		path = fmt.Sprintf("digging_snapshot_%d.json", time.Now().Unix())
	}

	data := snapshotData{GeneratedAt: time.Now().Format(time.RFC3339)}

	e.sendProgress(prog, ProgressUpdate{Phase: FetchTracks, Step: 1, Total: 3, Message: "Fetching track inbox..."})
	data.Tracks = e.sheets.TrackEntries(ctx)
	e.sendProgress(prog, fetchTracksUpdate(1, 3, len(data.Tracks)))

	e.sendProgress(prog, ProgressUpdate{Phase: FetchAlbums, Step: 2, Total: 3, Message: "Fetching album inbox..."})
	data.Albums = e.sheets.AlbumEntries(ctx)
	e.sendProgress(prog, fetchAlbumsUpdate(2, 3, len(data.Albums)))

	e.sendProgress(prog, fetchHistoryUpdate(3, 3))
	entries, err := e.history.History(false)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	data.History = entries

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	e.sendProgress(prog, snapshotWrittenUpdate(path))

	return &SnapshotResult{
		Path:       path,
		TrackCount: len(data.Tracks),
		AlbumCount: len(data.Albums),
		LikeCount:  len(data.History),
	}, nil
}
