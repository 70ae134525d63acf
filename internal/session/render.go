package session

import (
	"fmt"
	"strings"

	"cae-cli/internal/format"
	"cae-cli/internal/model"
	"cae-cli/internal/statusutil"
)

// Envelope is the structured (json/edn/yaml) shape of a command result.
type Envelope struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Data    any    `json:"data,omitempty" yaml:"data,omitempty"`
}

// emit writes a command result: plain text by default, an Envelope otherwise.
func (s *Session) emit(msg string, data any) error {
	f := strings.ToLower(strings.TrimSpace(s.opts.Format))
	if f != "" && f != "text" {
		return format.Write(s.out, Envelope{Message: msg, Data: data}, f, s.opts.Pretty)
	}
	if msg != "" {
		fmt.Fprintln(s.out, msg)
	}
	if t, ok := data.(format.Texter); ok {
		return format.WriteText(s.out, t)
	}
	return nil
}

type caseList []model.Case

func (xs caseList) Text() string {
	var b strings.Builder
	for _, c := range xs {
		b.WriteString(caseLine(c))
		b.WriteByte('\n')
	}
	return b.String()
}

func caseLine(c model.Case) string {
	line := fmt.Sprintf("#%d %s [%s]", c.ID, c.Student, c.Status)
	if c.Urgent {
		line += " urgent"
	}
	if n := len(c.Notes); n > 0 {
		line += fmt.Sprintf(" (%d note(s))", n)
	}
	return line
}

type caseDetail model.Case

func (c caseDetail) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Case #%d\n", c.ID)
	fmt.Fprintf(&b, "  Student: %s\n", c.Student)
	fmt.Fprintf(&b, "  Status:  %s (%s)\n", c.Status, statusutil.Label(c.Status))
	if c.Urgent {
		b.WriteString("  Urgent:  yes\n")
	} else {
		b.WriteString("  Urgent:  no\n")
	}
	b.WriteString(indent(noteList(c.Notes).Text(), "  "))
	return b.String()
}

type noteList []string

func (xs noteList) Text() string {
	if len(xs) == 0 {
		return "No notes recorded.\n"
	}
	var b strings.Builder
	b.WriteString("Notes (newest first):\n")
	for i, n := range xs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, n)
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(l)
	}
	return b.String()
}
