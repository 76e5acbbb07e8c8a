package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/niprobin/digging/internal/player"
	"github.com/niprobin/digging/internal/shared"
	"github.com/niprobin/digging/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive track inbox.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	state := r.openState()
	defer state.close()

	if state.likes == nil {
		return fmt.Errorf("%w: interactive inbox requires the local database", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/digging-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.logger = fileLogger

	model := ui.NewModel(ctx, ui.Deps{
		Sheets:    r.sheets,
		Relay:     r.relay,
		Likes:     state.likes,
		Dismissed: state.trackDismissed,
		Filters:   state.filters,
		Player:    player.New(),
		Logger:    fileLogger,
	})

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
