package main

import (
	"context"
	"fmt"

	"github.com/niprobin/digging/internal/shared"
	"github.com/urfave/cli/v3"
)

// PreviewSearch searches the preview catalogs for a track.
func (r *Runner) PreviewSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	if !r.preview.Enabled() {
		return fmt.Errorf("%w: enable preview in the config", shared.ErrStreamingDisabled)
	}

	tracks, err := r.preview.Search(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Preview results for %q", query))
	if len(tracks) == 0 {
		r.writePlain("No matches.\n")
	}
	for i, track := range tracks {
		r.writePlain("%d. %s - %s", i+1, track.Artist, track.Title)
		if track.Duration > 0 {
			r.writePlain(" (%d:%02d)", track.Duration/60, track.Duration%60)
		}
		r.writePlain("\n")
	}
	if page := r.preview.SearchPageURL(query); page != "" {
		r.writePlain("\nFull search: %s\n", page)
		if cmd.Bool("open") {
			if err := shared.OpenBrowser(page); err != nil {
				r.logger.Warn("failed to open browser", "url", page, "error", err)
			}
		}
	}
	return nil
}

// PreviewStream resolves a stream URL for a track.
func (r *Runner) PreviewStream(ctx context.Context, cmd *cli.Command) error {
	artist := cmd.String("artist")
	track := cmd.String("track")
	trackID := cmd.String("id")

	if artist == "" && track == "" && trackID == "" {
		return fmt.Errorf("%w: provide --artist and --track, or --id", shared.ErrMissingArgument)
	}

	if !r.preview.Enabled() {
		return fmt.Errorf("%w: enable preview in the config", shared.ErrStreamingDisabled)
	}

	stream, err := r.preview.ResolveStream(ctx, artist, track, trackID)
	if err != nil {
		return err
	}

	r.writePlain("%s - %s\n", stream.Artist, stream.Title)
	r.writePlain("%s\n", stream.URL)
	return nil
}

// PreviewAlbum resolves the track listing for an album release.
func (r *Runner) PreviewAlbum(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: album name", shared.ErrMissingArgument)
	}

	if !r.preview.Enabled() {
		return fmt.Errorf("%w: enable preview in the config", shared.ErrStreamingDisabled)
	}

	album, err := r.preview.AlbumTracks(ctx, name)
	if err != nil {
		return err
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s", album.Artist, album.Name))
	for i, track := range album.Tracks {
		r.writePlain("%d. %s", i+1, track.Title)
		if track.Duration > 0 {
			r.writePlain(" (%d:%02d)", track.Duration/60, track.Duration%60)
		}
		r.writePlain("\n")
	}
	return nil
}
