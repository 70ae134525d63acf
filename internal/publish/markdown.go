package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"cae-cli/internal/model"
	"cae-cli/internal/statusutil"
)

// RenderTicketMarkdown renders one ticket as a markdown section.
// Headings start at level 2 so several tickets can share a document.
func RenderTicketMarkdown(t model.Ticket) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn(fmt.Sprintf("## Ticket #%d: %s", t.ID, Escape(t.Student)))
	writeLn("")
	writeLn("- **Status:** `" + string(t.Status) + "`")
	if t.Urgent {
		writeLn("- **Urgent:** yes")
	}
	if !t.CompletedAt.IsZero() {
		writeLn("- **Completed:** " + t.CompletedAt.UTC().Format(time.RFC3339))
	}
	if t.SessionID != "" {
		writeLn("- **Session:** `" + t.SessionID + "`")
	}
	if r := statusutil.Remark(t.Status); r != "" {
		writeLn("")
		writeLn("_" + r + "_")
	}
	writeLn("")

	if len(t.Notes) == 0 {
		writeLn("> No notes recorded.")
		writeLn("")
		return buf.String()
	}
	for i, n := range t.Notes {
		writeLn(fmt.Sprintf("%d. %s", i+1, Escape(n)))
	}
	writeLn("")
	return buf.String()
}

// RenderReport renders tickets under a single title, in the given order.
func RenderReport(title string, tickets []model.Ticket) string {
	var buf bytes.Buffer
	buf.WriteString("# " + strings.TrimSpace(title) + "\n\n")
	if len(tickets) == 0 {
		buf.WriteString("_No completed cases yet._\n")
		return buf.String()
	}
	for _, t := range tickets {
		buf.WriteString(RenderTicketMarkdown(t))
	}
	return buf.String()
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`, "[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
)

// Escape backslash-escapes markdown punctuation in free text.
func Escape(s string) string { return mdEscaper.Replace(s) }
