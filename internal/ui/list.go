package ui

import (
	"fmt"
	"time"

	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
)

// inboxItem adapts a track entry to the bubbles list widget.
type inboxItem struct {
	entry models.TrackEntry
	liked bool
	now   time.Time
}

func (i inboxItem) Title() string {
	title := fmt.Sprintf("%s - %s", i.entry.Artist, i.entry.Title)
	if i.liked {
		return title + " " + styles.like.Render("♥")
	}
	return title
}

func (i inboxItem) Description() string {
	return fmt.Sprintf("via %s, %s", i.entry.Curator, shared.FormatRelativeDate(i.entry.AddedAt, i.now))
}

func (i inboxItem) FilterValue() string {
	return i.entry.Artist + " " + i.entry.Title
}

// queueItem adapts a queued preview track to the bubbles list widget.
type queueItem struct {
	track models.PreviewTrack
}

func (i queueItem) Title() string {
	return i.track.Title
}

func (i queueItem) Description() string {
	if i.track.Duration > 0 {
		return fmt.Sprintf("%s (%d:%02d)", i.track.Artist, i.track.Duration/60, i.track.Duration%60)
	}
	return i.track.Artist
}

func (i queueItem) FilterValue() string {
	return i.track.Artist + " " + i.track.Title
}
