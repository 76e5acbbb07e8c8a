package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchHistory Phase = iota
	FetchTracks
	FetchAlbums
	ExportHistory
	WriteSnapshot
)

func (p Phase) String() string {
	switch p {
	case FetchHistory:
		return "fetch_history"
	case FetchTracks:
		return "fetch_tracks"
	case FetchAlbums:
		return "fetch_albums"
	case ExportHistory:
		return "export_history"
	case WriteSnapshot:
		return "write_snapshot"
	default:
		return ""
	}
}

func fetchHistoryUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchHistory,
		Step:    step,
		Total:   total,
		Message: "Reading like history...",
	}
}

func fetchTracksUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetched track inbox (%d entries)", count),
	}
}

func fetchAlbumsUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAlbums,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetched album inbox (%d entries)", count),
	}
}

func exportingUpdate(step, total int, format string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportHistory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, format),
	}
}

func exportCompletedUpdate(step, total int, format string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportHistory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, format, filesCount),
	}
}

func exportFailedUpdate(step, total int, format string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportHistory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, format, err),
	}
}

func snapshotWrittenUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteSnapshot,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Snapshot written to %s", path),
	}
}
