package main

import (
	"context"
	"fmt"

	"github.com/niprobin/digging/internal/tasks"
	"github.com/urfave/cli/v3"
)

// newEngine opens local state and builds the export engine over it.
func (r *Runner) newEngine() (*tasks.Engine, func() error) {
	state := r.openState()
	if state.likes == nil {
		return tasks.NewEngine(r.sheets, nil), state.close
	}
	return tasks.NewEngine(r.sheets, state.likes), state.close
}

// Export writes the like history to disk in the requested formats.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	formats := cmd.StringSlice("format")

	engine, closeState := r.newEngine()
	defer closeState()

	r.writePlain("Exporting like history...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchHistory:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ExportHistory:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Export(ctx, progressCh, formats, tasks.ExportOpts{
		OutputDir:     cmd.String("output"),
		ActiveOnly:    cmd.Bool("active"),
		NumWorkers:    cmd.Int("workers"),
		CoverImageURL: cmd.String("cover-url"),
	})
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Entries: %d\n", result.EntryCount)
	r.writePlain("Formats: %d/%d succeeded\n", result.SuccessfulExports, result.TotalFormats)
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		r.writePlain("\nFailed formats:\n")
		for _, format := range result.Results {
			if format.Error != nil {
				r.writePlain("  - %s: %v\n", format.Format, format.Error)
			}
		}
		return fmt.Errorf("%d of %d formats failed", result.FailedExports, result.TotalFormats)
	}

	return nil
}

// Snapshot dumps the inboxes and like history to a JSON file.
func (r *Runner) Snapshot(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	engine, closeState := r.newEngine()
	defer closeState()

	progressCh := make(chan tasks.ProgressUpdate, 10)
	go func() {
		for update := range progressCh {
			r.writePlain("📥 %s\n", update.Message)
		}
	}()

	result, err := engine.Snapshot(ctx, progressCh, cmd.String("output"))
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n✓ Snapshot written to %s\n", result.Path)
	r.writePlain("  Tracks: %d, Albums: %d, History: %d\n", result.TrackCount, result.AlbumCount, result.LikeCount)
	return nil
}
