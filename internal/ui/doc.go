// Package ui implements the terminal inbox built on bubbletea.
//
// # Views
//
// The interface moves between three views. The inbox view lists the
// tracks currently passing the saved filters. The detail view shows a
// single entry with its curator and dates. The queue view lists tracks
// queued for preview playback.
//
// # Actions
//
// Like, dismiss, and queue act on the highlighted entry from either the
// inbox or the detail view. Like and dismiss relay to the webhook
// service before any local state changes, so a failed relay leaves the
// inbox untouched and surfaces the error in the status line. Queue is
// purely local and feeds the preview player.
//
// # Messages
//
// All IO happens in tea.Cmd functions that resolve to typed messages:
// tracksMsg carries a fetched inbox and actionMsg carries the outcome
// of a like or dismiss.
package ui
