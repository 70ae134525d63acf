package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cae-cli/internal/desk"
	"cae-cli/internal/statusutil"

	"github.com/spf13/cobra"
)

// newCommandTree builds a fresh tree per line so flag values never leak between lines.
func (s *Session) newCommandTree() *cobra.Command {
	root := &cobra.Command{
		Use:           "cae",
		Short:         "Student support desk session",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(s.newIntakeCmd())
	root.AddCommand(&cobra.Command{
		Use:   "attend",
		Short: "Take the next waiting case (urgent first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.desk.AttendNext()
			if err != nil {
				return err
			}
			tier := "normal"
			if c.Urgent() {
				tier = "urgent"
			}
			return s.emit(fmt.Sprintf("Attending case #%d: %s (%s)", c.ID(), c.Student(), tier), c.Snapshot())
		},
	})
	root.AddCommand(s.newNoteCmd())
	root.AddCommand(&cobra.Command{
		Use:   "notes",
		Short: "List the current case's notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := s.desk.Current()
			if c == nil {
				return desk.ErrNoCaseInAttention
			}
			return s.emit("", noteList(c.Notes()))
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "status <STATUS>",
		Short: "Change the current case's status (QUEUED|URGENT|IN_ATTENTION|COMPLETED or 1-4)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := statusutil.NormalizeStatus(args[0])
			if err != nil {
				return err
			}
			ch, err := s.desk.ChangeStatus(to)
			if err != nil {
				return err
			}
			return s.emit(fmt.Sprintf("Case #%d: %s -> %s", ch.CaseID, ch.From, ch.To), ch)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "finalize",
		Short: "Complete the current case and export its ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.desk.Finalize(cmd.Context())
			if c == nil {
				return err
			}
			if err != nil {
				// The case is finalized; only the export failed.
				fmt.Fprintln(s.err, "warning: "+err.Error())
			}
			return s.emit(fmt.Sprintf("Case #%d finalized.", c.ID()), c.Snapshot())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "undo",
		Short: "Reverse the last note or status action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, isNote, err := s.desk.Undo()
			if err != nil {
				return err
			}
			return s.emit(historyMessage("Undone", text, isNote), nil)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "redo",
		Short: "Replay the last undone action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, isNote, err := s.desk.Redo()
			if err != nil {
				return err
			}
			return s.emit(historyMessage("Redone", text, isNote), nil)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Show the case in attention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := s.desk.Current()
			if c == nil {
				return s.emit("No case in attention.", nil)
			}
			return s.emit("", caseDetail(c.Snapshot()))
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "queue",
		Short: "List waiting cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			urgent, normal := s.desk.Waiting()
			msg := fmt.Sprintf("%d waiting (%d urgent, %d normal)", urgent+normal, urgent, normal)
			return s.emit(msg, caseList(desk.Snapshots(s.desk.Queued())))
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "completed",
		Short: "List completed cases in completion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			xs := s.desk.Completed()
			if len(xs) == 0 {
				return s.emit("No completed cases.", caseList{})
			}
			return s.emit("", caseList(desk.Snapshots(xs)))
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show any case by id with its status remark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, ok := s.desk.Find(id)
			if !ok {
				return fmt.Errorf("case not found: %d", id)
			}
			return s.emit(statusutil.Remark(c.Status()), caseDetail(c.Snapshot()))
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "List every case of this session by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.emit("", caseList(desk.Snapshots(s.desk.AllCases())))
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "save-pending",
		Short: "Write waiting cases to the pending snapshot file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			xs := desk.Snapshots(s.desk.Queued())
			if err := s.opts.Tickets.WritePending(xs); err != nil {
				return err
			}
			return s.emit(fmt.Sprintf("Saved %d pending case(s) to %s", len(xs), s.opts.Tickets.PendingPath()), nil)
		},
	})
	for _, name := range []string{"exit", "quit"} {
		root.AddCommand(&cobra.Command{
			Use:   name,
			Short: "End the session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s.quit = true
				return nil
			},
		})
	}
	return root
}

func (s *Session) newIntakeCmd() *cobra.Command {
	var urgent bool
	cmd := &cobra.Command{
		Use:   "intake [--urgent] <name...>",
		Short: "Register a new case",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.desk.Intake(strings.Join(args, " "), urgent)
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("Case #%d registered for %s", c.ID(), c.Student())
			if c.Urgent() {
				msg += " (urgent)"
			}
			return s.emit(msg, c.Snapshot())
		},
	}
	cmd.Flags().BoolVarP(&urgent, "urgent", "u", false, "Queue in the urgent tier")
	return cmd
}

func (s *Session) newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Add or remove notes on the current case",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <text...>",
		Short: "Add a note",
		// Note text is free-form, including leading dashes.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.desk.AddNote(strings.Join(args, " ")); err != nil {
				return err
			}
			c := s.desk.Current()
			return s.emit(fmt.Sprintf("Note added to case #%d.", c.ID()), nil)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <n>",
		Short: "Remove the n-th note as listed by notes (1 = newest)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid note number: %q", args[0])
			}
			text, err := s.desk.RemoveNoteAt(n - 1)
			if err != nil {
				return err
			}
			return s.emit(fmt.Sprintf("Removed note: %s", text), nil)
		},
	})
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid case id: %q", s)
	}
	return id, nil
}

func historyMessage(verb, text string, isNote bool) string {
	if isNote {
		return fmt.Sprintf("%s: note %q", verb, text)
	}
	return verb + ": status change"
}

// describeErr adds desk context to errors shown to the operator.
func describeErr(d *desk.Desk, err error) string {
	var idx desk.IndexError
	switch {
	case errors.As(err, &idx):
		return fmt.Sprintf("no note %d; the current case has %d note(s)", idx.Index+1, idx.Len)
	case errors.Is(err, desk.ErrAlreadyAttending):
		if c := d.Current(); c != nil {
			return fmt.Sprintf("%s (case #%d: %s)", err, c.ID(), c.Student())
		}
	}
	return err.Error()
}
