package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
	"github.com/urfave/cli/v3"
)

// WebhookAddAlbum queues an album for download.
func (r *Runner) WebhookAddAlbum(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: album name", shared.ErrMissingArgument)
	}

	if err := r.relay.AddAlbum(ctx, name); err != nil {
		return err
	}

	r.writePlain("✓ Queued album: %s\n", name)
	return nil
}

// WebhookAddSong adds a song to a playlist.
func (r *Runner) WebhookAddSong(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: song name", shared.ErrMissingArgument)
	}
	playlist := cmd.String("playlist")
	if !models.ValidPlaylist(playlist) {
		return fmt.Errorf("%w: unknown playlist %q", shared.ErrInvalidArgument, playlist)
	}

	if err := r.relay.AddSong(ctx, name, playlist); err != nil {
		return err
	}

	r.writePlain("✓ Added %s to %s\n", name, playlist)
	return nil
}

// WebhookDismissTrack marks a track checked on the sheet.
func (r *Runner) WebhookDismissTrack(ctx context.Context, cmd *cli.Command) error {
	spotifyID := cmd.StringArg("spotify-id")
	if spotifyID == "" {
		return fmt.Errorf("%w: spotify id", shared.ErrMissingArgument)
	}

	if err := r.relay.MarkTrackChecked(ctx, spotifyID); err != nil {
		return err
	}

	r.writePlain("✓ Track marked checked: %s\n", spotifyID)
	return nil
}

// WebhookRateAlbum rates an album release.
func (r *Runner) WebhookRateAlbum(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: album name", shared.ErrMissingArgument)
	}
	rating := cmd.Int("rating")
	if !models.ValidRating(rating) {
		return fmt.Errorf("%w: rating must be between 1 and 5", shared.ErrInvalidArgument)
	}

	if err := r.relay.RateAlbum(ctx, name, rating); err != nil {
		return err
	}

	r.writePlain("✓ Rated %s: %d/5\n", name, rating)
	return nil
}

// WebhookDismissAlbum dismisses an album release.
func (r *Runner) WebhookDismissAlbum(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: album name", shared.ErrMissingArgument)
	}

	if err := r.relay.DismissAlbum(ctx, name); err != nil {
		return err
	}

	r.writePlain("✓ Dismissed album: %s\n", name)
	return nil
}

// WebhookSearch queries the streaming library for matching tracks.
func (r *Runner) WebhookSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	results, err := r.relay.LibrarySearch(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Library results for %q", query))
	if len(results) == 0 {
		r.writePlain("No matches.\n")
		return nil
	}
	for i, result := range results {
		r.writePlain("%d. %s - %s\n", i+1, result.Artist, result.Title)
		if len(result.Playlists) > 0 {
			r.writePlain("   in %s\n", strings.Join(result.Playlists, ", "))
		}
	}
	return nil
}

// WebhookDownload triggers the download pipeline.
func (r *Runner) WebhookDownload(ctx context.Context, cmd *cli.Command) error {
	if err := r.relay.TriggerDownload(ctx); err != nil {
		return err
	}

	r.writePlain("✓ Download pipeline triggered\n")
	return nil
}
