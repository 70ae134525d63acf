package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cae-cli/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newTicketsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Exported ticket files (ticket_<id>.txt in --dir)",
	}

	cmd.AddCommand(newTicketsListCmd(app))
	cmd.AddCommand(newTicketsShowCmd(app))
	cmd.AddCommand(newTicketsRmCmd(app))

	return cmd
}

func newTicketsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exported tickets by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := app.tickets().List()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, ticketFiles{files: files, now: time.Now()})
		},
	}
}

func newTicketsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print an exported ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCaseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := app.tickets().Read(id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, ticketBody{ID: id, Path: app.tickets().TicketPath(id), Body: string(b)})
		},
	}
}

func newTicketsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an exported ticket file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCaseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := app.tickets().Delete(id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, message(fmt.Sprintf("Deleted ticket %d.", id)))
		},
	}
}

func parseCaseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid ticket id: %q", s)
	}
	return id, nil
}

type message string

func (m message) Text() string { return string(m) }

type ticketFiles struct {
	files []model.TicketFile
	now   time.Time
}

func (t ticketFiles) MarshalJSON() ([]byte, error) { return json.Marshal(t.files) }
func (t ticketFiles) MarshalYAML() (any, error)    { return t.files, nil }

func (t ticketFiles) Text() string {
	if len(t.files) == 0 {
		return "No exported tickets."
	}
	var b strings.Builder
	for _, f := range t.files {
		fmt.Fprintf(&b, "#%-4d %-18s %8s  %s\n", f.ID, f.Name, humanize.Bytes(uint64(f.Size)), humanize.RelTime(f.Modified, t.now, "ago", "from now"))
	}
	return b.String()
}

type ticketBody struct {
	ID   int    `json:"id" yaml:"id"`
	Path string `json:"path" yaml:"path"`
	Body string `json:"body" yaml:"body"`
}

func (t ticketBody) Text() string { return t.Body }
