package tasks

import (
	"context"

	"github.com/niprobin/digging/internal/models"
)

// SheetSource provides the inbox snapshots the snapshot operation dumps.
type SheetSource interface {
	TrackEntries(ctx context.Context) []models.TrackEntry
	AlbumEntries(ctx context.Context) []models.AlbumEntry
}

// HistorySource provides the like history feeding exports.
type HistorySource interface {
	History(activeOnly bool) ([]models.HistoryEntry, error)
}

// Engine runs the export and snapshot operations.
type Engine struct {
	sheets  SheetSource
	history HistorySource
}

// NewEngine creates an Engine over the given sources. The sheet source may be
// nil when only history exports are needed.
func NewEngine(sheets SheetSource, history HistorySource) *Engine {
	return &Engine{
		sheets:  sheets,
		history: history,
	}
}

// sendProgress sends a progress update without blocking.
//
// A slow or absent consumer never stalls the operation.
func (e *Engine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
