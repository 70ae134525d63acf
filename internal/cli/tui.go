package cli

import (
	"cae-cli/internal/tui"

	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, app *App) error {
	// The screen belongs to the TUI, so logs only go to --log-file.
	logger, closeLog, err := newLogger(app, nil)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog()

	d, closeDesk, err := openDesk(cmd.Context(), app, logger)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeDesk()

	opts := tui.Options{Tickets: app.tickets(), Logger: logger}
	if app.cfg != nil && app.cfg.TUI != nil {
		opts.Glyphs = app.cfg.TUI.Glyphs
		opts.Theme = app.cfg.TUI.Theme
	}
	return tui.Run(cmd.Context(), d, opts)
}
