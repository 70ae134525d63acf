// Package tui is the interactive desk dashboard.
package tui

import (
	"context"
	"log/slog"

	"cae-cli/internal/desk"
	"cae-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	// Tickets is where the pending snapshot is written.
	Tickets store.TicketDir
	// Glyphs and Theme come from the tui config section.
	Glyphs string
	Theme  string
	Logger *slog.Logger
}

func Run(ctx context.Context, d *desk.Desk, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	m := newModel(ctx, d, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
