package tui

import (
	"fmt"
	"strings"

	"cae-cli/internal/desk"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func paneWidth(total int) int {
	w := (total - 3) / 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m appModel) View() string {
	header := m.viewHeader()
	footer := m.viewFooter()
	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	if m.mode == modeCompleted {
		md := completedReport(desk.Snapshots(m.desk.Completed()))
		body = normalizePane(renderMarkdown(md, m.width-2), m.width, bodyH)
	} else {
		pw := paneWidth(m.width)
		left := normalizePane(m.viewQueue(pw), pw, bodyH)
		right := normalizePane(m.viewCurrent(pw), pw, bodyH)
		sep := normalizePane(strings.Repeat(" \n", bodyH), 3, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
	}
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m appModel) viewHeader() string {
	urgent, normal := m.desk.Waiting()
	sess := m.desk.SessionID()
	if len(sess) > 8 {
		sess = sess[:8]
	}
	title := styleHeading().Render("cae") + styleMuted().Render("  session "+sess)
	counts := fmt.Sprintf("waiting %d  %s %d urgent  %d normal  done %d",
		urgent+normal, glyphUrgent(), urgent, normal, len(m.desk.Completed()))
	if c, ok := m.desk.NextUp(); ok {
		counts += fmt.Sprintf("  next #%d %s", c.ID(), c.Student())
	}
	rule := lipgloss.NewStyle().Foreground(colorChromeFg).Render(strings.Repeat(glyphHRule(), maxInt(m.width, 1)))
	return fitWidth(title+"   "+counts, m.width) + "\n" + rule
}

func (m appModel) viewQueue(w int) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("Queue") + "\n")
	queued := m.desk.Queued()
	if len(queued) == 0 {
		b.WriteString(styleMuted().Render("No cases waiting.") + "\n")
		return b.String()
	}
	// Attend order: urgent tier first, then normal, FIFO within each.
	pos := 1
	for _, urgentTier := range []bool{true, false} {
		for _, c := range queued {
			if c.Urgent() != urgentTier {
				continue
			}
			line := fmt.Sprintf("%2d. #%d %s", pos, c.ID(), c.Student())
			if c.Urgent() {
				line = styleUrgent().Render(glyphUrgent()) + " " + line
			} else {
				line = "  " + line
			}
			b.WriteString(fitWidth(line, w) + "\n")
			pos++
		}
	}
	return b.String()
}

func (m appModel) viewCurrent(w int) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("In attention") + "\n")
	c := m.desk.Current()
	if c == nil {
		b.WriteString(styleMuted().Render("No case in attention. Press a to attend.") + "\n")
		return b.String()
	}
	name := fmt.Sprintf("#%d %s", c.ID(), c.Student())
	if c.Urgent() {
		name += " " + styleUrgent().Render(glyphUrgent()+" urgent")
	}
	b.WriteString(name + "\n")
	b.WriteString(styleMuted().Render("status ") + string(c.Status()) + "\n\n")

	if m.mode == modeStatus {
		b.WriteString(styleHeading().Render("Change status") + "\n")
		b.WriteString(m.status.View() + "\n")
		b.WriteString(styleMuted().Render("enter: apply   esc: cancel") + "\n")
		return b.String()
	}

	notes := c.Notes()
	b.WriteString(styleHeading().Render(fmt.Sprintf("Notes (%d)", len(notes))) + "\n")
	if len(notes) == 0 {
		b.WriteString(styleMuted().Render("No notes recorded.") + "\n")
	}
	for i, n := range notes {
		line := fmt.Sprintf("%s %s", glyphBullet(), n)
		if i == m.noteIdx {
			b.WriteString(styleSelected().Render(fitWidth(glyphCursor()+line, w)) + "\n")
			continue
		}
		b.WriteString(fitWidth(" "+line, w) + "\n")
	}
	if a, ok := m.desk.LastUndoable(); ok {
		b.WriteString("\n" + styleMuted().Render("undo: "+a.String()) + "\n")
	}
	return b.String()
}

func (m appModel) viewFooter() string {
	switch m.mode {
	case modeIntake, modeNote:
		label := "Note: "
		hint := "enter: add   esc: cancel"
		if m.mode == modeIntake {
			label = "Name: "
			hint = "enter: register   tab: urgent   esc: cancel"
			if m.urgent {
				label = styleUrgent().Render(glyphUrgent()+" urgent") + " " + label
			}
		}
		line := renderInputLine(m.width, label+m.input.View())
		return line + "\n" + m.viewMinibuffer(hint)
	case modeCompleted:
		return m.viewMinibuffer("esc/c: back")
	}
	var parts []string
	add := func(kb key.Binding, desc string) {
		h := kb.Help()
		if !kb.Enabled() || h.Key == "" {
			return
		}
		if desc == "" {
			desc = h.Desc
		}
		parts = append(parts, h.Key+" "+desc)
	}
	for _, kb := range m.keys.footerBindings() {
		add(kb, "")
	}
	// Undo and redo are only offered when there is something to replay.
	undo, redo := m.desk.HistoryDepth()
	if m.desk.CanUndo() {
		add(m.keys.Undo, fmt.Sprintf("undo(%d)", undo))
	}
	if m.desk.CanRedo() {
		add(m.keys.Redo, fmt.Sprintf("redo(%d)", redo))
	}
	add(m.keys.Quit, "")
	return m.viewMinibuffer(strings.Join(parts, "  "))
}

// viewMinibuffer shows the last message, or fallback when there is none.
func (m appModel) viewMinibuffer(fallback string) string {
	if m.minibuffer == "" {
		return fitWidth(styleMuted().Render(fallback), m.width)
	}
	st := lipgloss.NewStyle().Foreground(colorDone)
	if m.minibufferErr {
		st = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	}
	return fitWidth(st.Render(m.minibuffer), m.width)
}

func renderInputLine(width int, inputView string) string {
	if width < 10 {
		width = 10
	}
	// A text input must stay on one visual line.
	inputView = strings.NewReplacer("\n", " ", "\r", " ").Replace(inputView)
	line := lipgloss.PlaceHorizontal(
		width,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	return fitWidth(line, width)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
