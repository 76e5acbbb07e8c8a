package main

import (
	"context"
	"fmt"
	"time"

	"github.com/niprobin/digging/internal/filters"
	"github.com/niprobin/digging/internal/repositories"
	"github.com/niprobin/digging/internal/shared"
	"github.com/niprobin/digging/internal/sheets"
	"github.com/niprobin/digging/internal/stores"
	"github.com/urfave/cli/v3"
)

// localState bundles the persisted stores the inbox commands consult.
type localState struct {
	likes          *stores.LikeStore
	filters        *stores.FilterStore
	trackDismissed *stores.IDSetStore
	albumDismissed *stores.IDSetStore
	bookmarks      *stores.IDSetStore
	ratings        *stores.RatingStore
	close          func() error
}

// openState opens the local database and hydrates the dashboard stores.
// Failures degrade to empty state so the sheet commands still work.
func (r *Runner) openState() *localState {
	db, err := r.openDatabase()
	if err != nil {
		r.logger.Warn("local state unavailable", "error", err)
		return &localState{close: func() error { return nil }}
	}

	kv := repositories.NewKVRepository(db)
	return &localState{
		likes:          stores.NewLikeStore(repositories.NewLikeRepository(db), kv, r.logger),
		filters:        stores.NewFilterStore(kv, r.logger),
		trackDismissed: stores.NewIDSetStore(kv, stores.NamespaceTrackDismissed, r.logger),
		albumDismissed: stores.NewIDSetStore(kv, stores.NamespaceAlbumDismissed, r.logger),
		bookmarks:      stores.NewIDSetStore(kv, stores.NamespaceAlbumBookmarks, r.logger),
		ratings:        stores.NewRatingStore(kv, r.logger),
		close:          db.Close,
	}
}

func (s *localState) dismissedTracks() map[string]bool {
	if s.trackDismissed == nil {
		return nil
	}
	return s.trackDismissed.Snapshot()
}

func (s *localState) dismissedAlbums() map[string]bool {
	if s.albumDismissed == nil {
		return nil
	}
	return s.albumDismissed.Snapshot()
}

func (s *localState) bookmarkedAlbums() map[string]bool {
	if s.bookmarks == nil {
		return nil
	}
	return s.bookmarks.Snapshot()
}

func (s *localState) likedFunc() filters.LikedFunc {
	if s.likes == nil {
		return nil
	}
	return s.likes.LikedFunc()
}

// Tracks lists the filtered track inbox.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	window, err := filters.ParseTimeWindow(cmd.String("window"))
	if err != nil {
		return err
	}

	state := r.openState()
	defer state.close()

	query := filters.TrackQuery{
		State: filters.State{
			TimeWindow:    window,
			Curator:       cmd.String("curator"),
			HideChecked:   !cmd.Bool("all"),
			ShowLikedOnly: cmd.Bool("liked"),
		},
		IsLiked: state.likedFunc(),
		Now:     time.Now(),
	}
	if !cmd.Bool("all") {
		dismissed := state.dismissedTracks()
		query.Dismissed = dismissed
		query.LocallyChecked = dismissed
	}

	entries := filters.FilterTracks(r.sheets.TrackEntries(ctx), query)

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Track inbox (%s)", window.Label()))
	if len(entries) == 0 {
		r.writePlain("Nothing new. Check back later.\n")
		return nil
	}
	now := time.Now()
	for i, entry := range entries {
		marker := ""
		if query.IsLiked != nil && query.IsLiked(entry.ID, entry.Liked) {
			marker = " ♥"
		}
		r.writePlain("%d. %s - %s%s\n", i+1, entry.Artist, entry.Title, marker)
		r.writePlain("   via %s, %s\n", entry.Curator, shared.FormatRelativeDate(entry.AddedAt, now))
	}
	r.writePlain("\nCurators: %v\n", sheets.Curators(entries))
	return nil
}

// Albums lists the filtered album inbox.
func (r *Runner) Albums(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	window, err := filters.ParseTimeWindow(cmd.String("window"))
	if err != nil {
		return err
	}

	state := r.openState()
	defer state.close()

	query := filters.AlbumQuery{
		TimeWindow: window,
		Bookmarked: state.bookmarkedAlbums(),
		IsLiked:    state.likedFunc(),
		Now:        time.Now(),
	}
	if !cmd.Bool("all") {
		query.Dismissed = state.dismissedAlbums()
	}

	entries := filters.FilterAlbums(r.sheets.AlbumEntries(ctx), query)

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Album inbox (%s)", window.Label()))
	if len(entries) == 0 {
		r.writePlain("Nothing new. Check back later.\n")
		return nil
	}
	bookmarked := state.bookmarkedAlbums()
	for i, entry := range entries {
		artist, title := shared.SplitReleaseName(entry.Name)
		if title == "" {
			title = entry.Name
		}
		marker := ""
		if bookmarked[entry.ID] {
			marker = " ⚑"
		}
		if state.ratings != nil {
			if rating, ok := state.ratings.Get(entry.ID); ok {
				marker += fmt.Sprintf(" [%d/5]", rating)
			}
		}
		r.writePlain("%d. %s - %s%s\n", i+1, artist, title, marker)
		r.writePlain("   added %s\n", shared.FormatOrdinalDate(entry.AddedAt))
	}
	return nil
}

// History shows the like history.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	state := r.openState()
	defer state.close()

	if state.likes == nil {
		return fmt.Errorf("%w: like history requires the local database", shared.ErrServiceUnavailable)
	}

	entries, err := state.likes.History(cmd.Bool("active"))
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Like history (%d entries)", len(entries)))
	for i, entry := range entries {
		status := "liked"
		if !entry.Active {
			status = "unliked"
		}
		r.writePlain("%d. %s - %s (%s, %s %s)\n",
			i+1, entry.Subtitle, entry.Title, entry.Type, status, shared.FormatOrdinalDate(entry.LikedAt))
	}
	return nil
}

// State inspects the persisted dashboard state namespaces.
func (r *Runner) State(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	kv := repositories.NewKVRepository(db)

	if namespace := cmd.String("namespace"); namespace != "" {
		value, err := kv.Get(namespace)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", value)
	}

	namespaces, err := kv.Namespaces()
	if err != nil {
		return fmt.Errorf("failed to list namespaces: %w", err)
	}

	r.writePlainHeader("Persisted state")
	if len(namespaces) == 0 {
		r.writePlain("No state persisted yet.\n")
		return nil
	}
	for _, namespace := range namespaces {
		r.writePlain("- %s\n", namespace)
	}
	return nil
}
