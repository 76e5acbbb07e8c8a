package filters

import (
	"fmt"
	"time"

	"github.com/niprobin/digging/internal/shared"
)

// TimeWindow limits a list to entries added within a number of days.
type TimeWindow string

const (
	Week     TimeWindow = "week"
	TwoWeeks TimeWindow = "two_weeks"
	Month    TimeWindow = "month"
	All      TimeWindow = "all"
)

// TimeWindows lists the selectable windows in display order.
var TimeWindows = []TimeWindow{Week, TwoWeeks, Month, All}

// Days returns the window length and whether the window is bounded.
func (w TimeWindow) Days() (int, bool) {
	switch w {
	case Week:
		return 7, true
	case TwoWeeks:
		return 14, true
	case Month:
		return 30, true
	default:
		return 0, false
	}
}

// Label returns the window's display label.
func (w TimeWindow) Label() string {
	switch w {
	case Week:
		return "Last week"
	case TwoWeeks:
		return "Last 2 weeks"
	case Month:
		return "Last month"
	default:
		return "All"
	}
}

// ParseTimeWindow validates a raw window value.
func ParseTimeWindow(value string) (TimeWindow, error) {
	switch TimeWindow(value) {
	case Week, TwoWeeks, Month, All:
		return TimeWindow(value), nil
	}
	return "", fmt.Errorf("unknown time window %q: %w", value, shared.ErrInvalidArgument)
}

// WithinWindow reports whether date falls inside the window relative to now.
//
// An unbounded window admits everything, including future dates.
func WithinWindow(date time.Time, window TimeWindow, now time.Time) bool {
	days, bounded := window.Days()
	if !bounded {
		return true
	}
	return now.Sub(date) <= time.Duration(days)*24*time.Hour
}

// State is the filter selection shared across the inbox views.
type State struct {
	TimeWindow    TimeWindow `json:"timeWindow"`
	Curator       string     `json:"curator"`
	HideChecked   bool       `json:"hideChecked"`
	ShowLikedOnly bool       `json:"showLikedOnly"`
}

// DefaultState returns the selection new sessions start from.
func DefaultState() State {
	return State{
		TimeWindow:    TwoWeeks,
		Curator:       "",
		HideChecked:   true,
		ShowLikedOnly: false,
	}
}

// Patch carries a partial state for hydration; nil fields keep the current value.
type Patch struct {
	TimeWindow    *TimeWindow `json:"timeWindow,omitempty"`
	Curator       *string     `json:"curator,omitempty"`
	HideChecked   *bool       `json:"hideChecked,omitempty"`
	ShowLikedOnly *bool       `json:"showLikedOnly,omitempty"`
}

// Apply merges a patch into the state, returning the merged copy.
func (s State) Apply(patch Patch) State {
	if patch.TimeWindow != nil {
		s.TimeWindow = *patch.TimeWindow
	}
	if patch.Curator != nil {
		s.Curator = *patch.Curator
	}
	if patch.HideChecked != nil {
		s.HideChecked = *patch.HideChecked
	}
	if patch.ShowLikedOnly != nil {
		s.ShowLikedOnly = *patch.ShowLikedOnly
	}
	return s
}

// SetTimeWindow replaces the active window.
func (s *State) SetTimeWindow(window TimeWindow) {
	s.TimeWindow = window
}

// SetCurator selects a curator; selecting the active one again clears it.
func (s *State) SetCurator(curator string) {
	if s.Curator == curator {
		s.Curator = ""
		return
	}
	s.Curator = curator
}

// ToggleHideChecked flips the listened-entry filter.
func (s *State) ToggleHideChecked() {
	s.HideChecked = !s.HideChecked
}

// ToggleLikedOnly flips the liked-only filter.
func (s *State) ToggleLikedOnly() {
	s.ShowLikedOnly = !s.ShowLikedOnly
}
