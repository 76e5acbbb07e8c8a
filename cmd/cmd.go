// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand runs the dashboard HTTP server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the dashboard server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the dashboard in the default browser",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config file from the bundled template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path for the config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// tracksCommand lists the filtered track inbox.
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tracks",
		Aliases: []string{"t"},
		Usage:   "List the track inbox",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Time window (week, two_weeks, month, all)",
				Value:   "week",
			},
			&cli.StringFlag{
				Name:  "curator",
				Usage: "Only show tracks from this curator",
			},
			&cli.BoolFlag{
				Name:  "liked",
				Usage: "Only show liked tracks",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Include checked and dismissed tracks",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Tracks,
	}
}

// albumsCommand lists the filtered album inbox.
func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "albums",
		Aliases: []string{"a"},
		Usage:   "List the album inbox",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Time window (week, two_weeks, month, all)",
				Value:   "two_weeks",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Include checked and dismissed albums",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Albums,
	}
}

// historyCommand shows and exports the like history.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show the like history",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "active",
				Usage: "Only show currently liked entries",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.History,
	}
}

// exportCommand writes the like history to disk in one or more formats.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the like history to disk",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringSliceFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export formats (csv, markdown, txt)",
				Value:   []string{"csv"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.BoolFlag{
				Name:  "active",
				Usage: "Export only currently liked entries",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent export workers",
				Value: 2,
			},
			&cli.StringFlag{
				Name:  "cover-url",
				Usage: "Cover image URL for the Markdown format",
			},
		},
		Action: r.Export,
	}
}

// snapshotCommand dumps the inboxes and like history to a JSON file.
func snapshotCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Dump inboxes and like history to a JSON file",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
		},
		Action: r.Snapshot,
	}
}

// webhookCommand relays curation actions to the automation endpoints.
func webhookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "webhook",
		Aliases: []string{"wh"},
		Usage:   "Relay actions to the automation webhooks",
		Commands: []*cli.Command{
			{
				Name:  "add-album",
				Usage: "Queue an album for download",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.WebhookAddAlbum,
			},
			{
				Name:  "add-song",
				Usage: "Add a song to a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Usage:    "Destination playlist",
						Required: true,
					},
				},
				Action: r.WebhookAddSong,
			},
			{
				Name:  "dismiss-track",
				Usage: "Mark a track checked on the sheet",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "spotify-id"},
				},
				Action: r.WebhookDismissTrack,
			},
			{
				Name:  "rate-album",
				Usage: "Rate an album release",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "rating",
						Usage:    "Rating from 1 to 5",
						Required: true,
					},
				},
				Action: r.WebhookRateAlbum,
			},
			{
				Name:  "dismiss-album",
				Usage: "Dismiss an album release",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.WebhookDismissAlbum,
			},
			{
				Name:   "download",
				Usage:  "Trigger the download pipeline",
				Action: r.WebhookDownload,
			},
			{
				Name:  "search",
				Usage: "Search the streaming library",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
				},
				Action: r.WebhookSearch,
			},
		},
	}
}

// previewCommand resolves audio previews.
func previewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Audio preview operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search the preview catalogs for a track",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the full search page in the browser",
					},
				},
				Action: r.PreviewSearch,
			},
			{
				Name:  "stream",
				Usage: "Resolve a stream URL for a track",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Artist name",
					},
					&cli.StringFlag{
						Name:  "track",
						Usage: "Track title",
					},
					&cli.StringFlag{
						Name:  "id",
						Usage: "Catalog track id",
					},
				},
				Action: r.PreviewStream,
			},
			{
				Name:  "album",
				Usage: "Resolve the track listing for an album release",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.PreviewAlbum,
			},
		},
	}
}

// stateCommand inspects the locally persisted dashboard state.
func stateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "state",
		Usage: "Inspect locally persisted dashboard state",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "namespace",
				Usage: "Print one namespace's raw snapshot",
			},
		},
		Action: r.State,
	}
}

// tuiCommand returns the top-level TUI command for the interactive inbox.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive track inbox",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.TUI,
	}
}
