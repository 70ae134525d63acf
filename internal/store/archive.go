package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cae-cli/internal/model"

	_ "modernc.org/sqlite"
)

// Archive keeps finalized tickets across runs in a sqlite file.
// Case ids restart every run, so rows are keyed by (session_id, id).
type Archive struct {
	db   *sql.DB
	path string
}

func OpenArchive(ctx context.Context, path string) (*Archive, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("archive: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	a := &Archive{db: db, path: path}
	if err := a.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) Path() string { return a.path }

func (a *Archive) Close() error { return a.db.Close() }

func (a *Archive) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tickets (
			session_id TEXT NOT NULL,
			id INTEGER NOT NULL,
			student TEXT NOT NULL,
			status TEXT NOT NULL,
			urgent INTEGER NOT NULL,
			completed_at_unixms INTEGER NOT NULL,
			PRIMARY KEY(session_id, id)
		);`,
		`CREATE TABLE IF NOT EXISTS ticket_notes (
			session_id TEXT NOT NULL,
			ticket_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			body TEXT NOT NULL,
			PRIMARY KEY(session_id, ticket_id, position),
			FOREIGN KEY(session_id, ticket_id) REFERENCES tickets(session_id, id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_completed ON tickets(completed_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := a.db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Export stores a finalized ticket and its notes in one transaction.
func (a *Archive) Export(ctx context.Context, t model.Ticket) (err error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	completed := t.CompletedAt
	if completed.IsZero() {
		completed = time.Now()
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO tickets(session_id, id, student, status, urgent, completed_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		t.SessionID, t.ID, t.Student, string(t.Status), boolInt(t.Urgent), completed.UnixMilli(),
	); err != nil {
		return fmt.Errorf("archive ticket %d: %w", t.ID, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM ticket_notes WHERE session_id = ? AND ticket_id = ?`, t.SessionID, t.ID); err != nil {
		return err
	}
	for i, n := range t.Notes {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO ticket_notes(session_id, ticket_id, position, body) VALUES(?, ?, ?, ?)`,
			t.SessionID, t.ID, i, n,
		); err != nil {
			return fmt.Errorf("archive ticket %d note %d: %w", t.ID, i, err)
		}
	}
	return tx.Commit()
}

// List returns archived tickets, most recently completed first. limit <= 0 means all.
func (a *Archive) List(ctx context.Context, limit int) ([]model.Ticket, error) {
	q := `SELECT session_id, id, student, status, urgent, completed_at_unixms FROM tickets ORDER BY completed_at_unixms DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		notes, err := a.notes(ctx, out[i].SessionID, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Notes = notes
	}
	return out, nil
}

// Get returns every archived ticket with the given case id, newest first.
func (a *Archive) Get(ctx context.Context, id int) ([]model.Ticket, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT session_id, id, student, status, urgent, completed_at_unixms FROM tickets WHERE id = ? ORDER BY completed_at_unixms DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		notes, err := a.notes(ctx, out[i].SessionID, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Notes = notes
	}
	return out, nil
}

func (a *Archive) notes(ctx context.Context, sessionID string, id int) ([]string, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT body FROM ticket_notes WHERE session_id = ? AND ticket_id = ? ORDER BY position`, sessionID, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		out = append(out, body)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(r rowScanner) (model.Ticket, error) {
	var (
		t         model.Ticket
		status    string
		urgent    int
		completed int64
	)
	if err := r.Scan(&t.SessionID, &t.ID, &t.Student, &status, &urgent, &completed); err != nil {
		return model.Ticket{}, err
	}
	t.Status = model.Status(status)
	t.Urgent = urgent != 0
	t.CompletedAt = time.UnixMilli(completed).UTC()
	return t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
