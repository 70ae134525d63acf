package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cae-cli/internal/model"
	"cae-cli/internal/publish"
	"cae-cli/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Finalized tickets kept in the sqlite archive",
	}

	cmd.AddCommand(newArchiveListCmd(app))
	cmd.AddCommand(newArchiveShowCmd(app))
	cmd.AddCommand(newArchivePublishCmd(app))

	return cmd
}

func newArchiveListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived tickets, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openArchive(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			ts, err := a.List(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, archivedTickets{tickets: ts, now: time.Now()})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows (0 = all)")
	return cmd
}

func newArchiveShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show archived tickets with a case id (one per session)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCaseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			a, err := openArchive(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			ts, err := a.Get(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(ts) == 0 {
				return writeErr(cmd, errNotFound("archived ticket", id))
			}
			return writeOut(cmd, app, archivedDetail(ts))
		},
	}
}

func newArchivePublishCmd(app *App) *cobra.Command {
	var to string
	var overwrite bool
	var report bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write archived tickets as markdown files (tickets/<session>-<id>.md)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openArchive(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			ts, err := a.List(cmd.Context(), 0)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteTickets(ts, to, publish.WriteOptions{Overwrite: overwrite, Report: report})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, publishResult(res))
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	cmd.Flags().BoolVar(&report, "report", true, "Also write index.md with every ticket")
	return cmd
}

type publishResult publish.WriteResult

func (r publishResult) Text() string {
	return fmt.Sprintf("Wrote %d file(s).\n%s", len(r.Written), strings.Join(r.Written, "\n"))
}

func openArchive(cmd *cobra.Command, app *App) (*store.Archive, error) {
	if app.Archive == "" {
		return nil, archiveDisabledError{}
	}
	return store.OpenArchive(cmd.Context(), app.Archive)
}

type archivedTickets struct {
	tickets []model.Ticket
	now     time.Time
}

func (t archivedTickets) MarshalJSON() ([]byte, error) { return json.Marshal(t.tickets) }
func (t archivedTickets) MarshalYAML() (any, error)    { return t.tickets, nil }

func (t archivedTickets) Text() string {
	if len(t.tickets) == 0 {
		return "Archive is empty."
	}
	var b strings.Builder
	for _, tk := range t.tickets {
		flag := ""
		if tk.Urgent {
			flag = " urgent"
		}
		fmt.Fprintf(&b, "#%-4d %-24s %s%s  %s  session %s\n",
			tk.ID, tk.Student, tk.Status, flag, humanize.RelTime(tk.CompletedAt, t.now, "ago", "from now"), shortSession(tk.SessionID))
	}
	return b.String()
}

type archivedDetail []model.Ticket

func (t archivedDetail) Text() string {
	var b strings.Builder
	for i, tk := range t {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "session %s\n", tk.SessionID)
		b.Write(store.FormatTicket(tk))
	}
	return b.String()
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
