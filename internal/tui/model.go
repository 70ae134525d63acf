package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cae-cli/internal/desk"
	"cae-cli/internal/model"
	"cae-cli/internal/statusutil"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type mode int

const (
	modeNormal mode = iota
	modeIntake
	modeNote
	modeStatus
	modeCompleted
)

type appModel struct {
	ctx  context.Context
	desk *desk.Desk
	opts Options
	log  *slog.Logger
	keys keyMap

	width  int
	height int

	mode    mode
	input   textinput.Model
	urgent  bool
	status  list.Model
	noteIdx int

	minibuffer    string
	minibufferErr bool
}

func newModel(ctx context.Context, d *desk.Desk, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	l := opts.Logger
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := appModel{
		ctx:    ctx,
		desk:   d,
		opts:   opts,
		log:    l,
		keys:   newKeyMap(),
		width:  100,
		height: 30,
	}

	m.input = textinput.New()
	// Names and notes are not length limited on any other path either.
	m.input.CharLimit = 0
	m.input.Width = 40

	items := make([]list.Item, 0, len(model.Statuses))
	for _, st := range model.Statuses {
		items = append(items, statusItem(st))
	}
	m.status = list.New(items, newCompactItemDelegate(), 30, len(items))
	m.status.SetShowTitle(false)
	m.status.SetShowHelp(false)
	m.status.SetShowStatusBar(false)
	m.status.SetShowPagination(false)
	m.status.SetFilteringEnabled(false)
	// esc cancels the picker instead of quitting the program.
	m.status.KeyMap.Quit.SetEnabled(false)
	m.status.KeyMap.ForceQuit.SetEnabled(false)
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

type statusItem model.Status

func (s statusItem) FilterValue() string { return string(s) }
func (s statusItem) Title() string {
	return fmt.Sprintf("%-13s %s", string(s), styleMuted().Render(statusutil.Label(model.Status(s))))
}

// compactItemDelegate renders one-line list rows.
type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal:   lipgloss.NewStyle(),
		selected: styleSelected(),
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}
	style := d.normal
	prefix := "  "
	if index == m.Index() {
		style = d.selected
		prefix = glyphCursor() + " "
	}
	txt := fmt.Sprint(item)
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	}
	line := prefix + txt
	if xansi.StringWidth(line) > contentW {
		line = xansi.Cut(line, 0, contentW)
	}
	fmt.Fprint(w, style.Render(fitWidth(line, contentW)))
}

func (m *appModel) showMinibuffer(msg string) {
	m.minibuffer = strings.TrimSpace(msg)
	m.minibufferErr = false
}

func (m *appModel) showError(err error) {
	m.minibuffer = err.Error()
	m.minibufferErr = true
	m.log.Debug("tui action refused", "err", err)
}

func (m *appModel) clampNoteIdx() {
	n := 0
	if c := m.desk.Current(); c != nil {
		n = c.NoteCount()
	}
	if m.noteIdx >= n {
		m.noteIdx = n - 1
	}
	if m.noteIdx < 0 {
		m.noteIdx = 0
	}
}
