package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cae-cli/internal/desk"
	"cae-cli/internal/store"
)

// newLogger builds the process logger. Logs go to --log-file when set, else to fallback.
// The returned close func is never nil.
func newLogger(app *App, fallback io.Writer) (*slog.Logger, func() error, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(app.LogLevel))); err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", app.LogLevel, err)
	}
	w := fallback
	closeFn := func() error { return nil }
	if app.LogFile != "" {
		f, err := os.OpenFile(app.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = f.Close
	}
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// openDesk wires a desk to the ticket directory and, when configured, the sqlite archive.
func openDesk(ctx context.Context, app *App, logger *slog.Logger) (*desk.Desk, func() error, error) {
	opts := []desk.Option{
		desk.WithLogger(logger),
		desk.WithExporter(app.tickets()),
	}
	closeFn := func() error { return nil }
	if app.Archive != "" {
		a, err := store.OpenArchive(ctx, app.Archive)
		if err != nil {
			return nil, nil, fmt.Errorf("open archive: %w", err)
		}
		opts = append(opts, desk.WithExporter(a))
		closeFn = a.Close
	}
	d := desk.New(opts...)
	logger.Debug("desk opened", "session", d.SessionID(), "dir", app.Dir, "archive", app.Archive)
	return d, closeFn, nil
}
