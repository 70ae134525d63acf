package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cae-cli/internal/model"
)

const pendingFileName = "pending_tickets.txt"

var ticketFileRe = regexp.MustCompile(`^ticket_(\d+)\.txt$`)

// TicketDir holds exported ticket files and the pending snapshot.
type TicketDir struct {
	Dir string
}

func (t TicketDir) dir() string {
	if strings.TrimSpace(t.Dir) == "" {
		return "."
	}
	return filepath.Clean(t.Dir)
}

func (t TicketDir) TicketPath(id int) string {
	return filepath.Join(t.dir(), fmt.Sprintf("ticket_%d.txt", id))
}

func (t TicketDir) PendingPath() string {
	return filepath.Join(t.dir(), pendingFileName)
}

// Export writes ticket_<id>.txt, replacing any file with the same id.
func (t TicketDir) Export(ctx context.Context, tk model.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(t.dir(), 0o755); err != nil {
		return err
	}
	return atomicWriteFile(t.dir(), "ticket.*.tmp", t.TicketPath(tk.ID), FormatTicket(tk), 0o644)
}

// FormatTicket renders the plain-text ticket dump.
func FormatTicket(tk model.Ticket) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Ticket #%d\n", tk.ID)
	fmt.Fprintf(&b, "Student: %s\n", tk.Student)
	fmt.Fprintf(&b, "Final status: %s\n", tk.Status)
	fmt.Fprintf(&b, "Urgent: %s\n", yesNo(tk.Urgent))
	if !tk.CompletedAt.IsZero() {
		fmt.Fprintf(&b, "Completed: %s\n", tk.CompletedAt.UTC().Format(time.RFC3339))
	}
	b.WriteString("Notes:\n")
	if len(tk.Notes) == 0 {
		b.WriteString("  No notes recorded.\n")
	}
	for i, n := range tk.Notes {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, n)
	}
	return b.Bytes()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// List returns the ticket files in the directory ordered by id.
func (t TicketDir) List() ([]model.TicketFile, error) {
	ents, err := os.ReadDir(t.dir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.TicketFile{}, nil
		}
		return nil, err
	}
	out := make([]model.TicketFile, 0)
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		m := ticketFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		out = append(out, model.TicketFile{
			ID:       id,
			Name:     e.Name(),
			Path:     filepath.Join(t.dir(), e.Name()),
			Size:     info.Size(),
			Modified: info.ModTime().UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t TicketDir) Read(id int) ([]byte, error) {
	b, err := os.ReadFile(t.TicketPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("ticket %d: no file %s", id, t.TicketPath(id))
	}
	return b, err
}

func (t TicketDir) Delete(id int) error {
	err := os.Remove(t.TicketPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ticket %d: no file %s", id, t.TicketPath(id))
	}
	return err
}

// WritePending snapshots the waiting cases, one "id;student;STATUS;urgent" line each.
func (t TicketDir) WritePending(cases []model.Case) error {
	if err := os.MkdirAll(t.dir(), 0o755); err != nil {
		return err
	}
	var b bytes.Buffer
	for _, c := range cases {
		fmt.Fprintf(&b, "%d;%s;%s;%t\n", c.ID, c.Student, c.Status, c.Urgent)
	}
	return atomicWriteFile(t.dir(), "pending.*.tmp", t.PendingPath(), b.Bytes(), 0o644)
}
