package tui

import (
	"errors"
	"fmt"

	"cae-cli/internal/desk"
	"cae-cli/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.status.SetSize(paneWidth(m.width), len(model.Statuses))
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeIntake, modeNote:
			return m.updateInput(msg)
		case modeStatus:
			return m.updateStatusPicker(msg)
		case modeCompleted:
			if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Completed) {
				m.mode = modeNormal
			}
			return m, nil
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m appModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Intake):
		m.urgent = false
		return m.openInput(modeIntake, "Student name")

	case key.Matches(msg, m.keys.Attend):
		c, err := m.desk.AttendNext()
		if err != nil {
			m.showError(err)
			return m, nil
		}
		m.noteIdx = 0
		m.showMinibuffer(fmt.Sprintf("Attending #%d %s", c.ID(), c.Student()))

	case key.Matches(msg, m.keys.Note):
		if m.desk.Current() == nil {
			m.showError(desk.ErrNoCaseInAttention)
			return m, nil
		}
		return m.openInput(modeNote, "Note")

	case key.Matches(msg, m.keys.DelNote):
		text, err := m.desk.RemoveNoteAt(m.noteIdx)
		if err != nil {
			m.showError(err)
			return m, nil
		}
		m.clampNoteIdx()
		m.showMinibuffer("Removed note: " + text)

	case key.Matches(msg, m.keys.Up):
		if m.noteIdx > 0 {
			m.noteIdx--
		}

	case key.Matches(msg, m.keys.Down):
		m.noteIdx++
		m.clampNoteIdx()

	case key.Matches(msg, m.keys.Status):
		c := m.desk.Current()
		if c == nil {
			m.showError(desk.ErrNoCaseInAttention)
			return m, nil
		}
		for i, st := range model.Statuses {
			if st == c.Status() {
				m.status.Select(i)
			}
		}
		m.mode = modeStatus

	case key.Matches(msg, m.keys.Finalize):
		c, err := m.desk.Finalize(m.ctx)
		if c == nil {
			m.showError(err)
			return m, nil
		}
		m.noteIdx = 0
		if err != nil {
			m.showError(fmt.Errorf("case #%d finalized, but %w", c.ID(), err))
			return m, nil
		}
		m.showMinibuffer(fmt.Sprintf("Case #%d finalized", c.ID()))

	case key.Matches(msg, m.keys.Undo):
		text, isNote, err := m.desk.Undo()
		m.afterHistory("Undone", text, isNote, err)

	case key.Matches(msg, m.keys.Redo):
		text, isNote, err := m.desk.Redo()
		m.afterHistory("Redone", text, isNote, err)

	case key.Matches(msg, m.keys.Completed):
		m.mode = modeCompleted

	case key.Matches(msg, m.keys.Pending):
		xs := desk.Snapshots(m.desk.Queued())
		if err := m.opts.Tickets.WritePending(xs); err != nil {
			m.showError(err)
			return m, nil
		}
		m.showMinibuffer(fmt.Sprintf("Saved %d pending case(s) to %s", len(xs), m.opts.Tickets.PendingPath()))
	}
	return m, nil
}

func (m *appModel) afterHistory(verb, text string, isNote bool, err error) {
	if err != nil {
		var mm desk.CaseMismatchError
		if errors.As(err, &mm) {
			m.showError(fmt.Errorf("%s (record dropped)", err))
			return
		}
		m.showError(err)
		return
	}
	m.clampNoteIdx()
	if isNote {
		m.showMinibuffer(fmt.Sprintf("%s: note %q", verb, text))
		return
	}
	m.showMinibuffer(verb + ": status change")
}

func (m appModel) openInput(md mode, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.minibuffer = ""
	return m, m.input.Focus()
}

func (m appModel) closeInput() appModel {
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
	return m
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.closeInput(), nil

	case m.mode == modeIntake && key.Matches(msg, m.keys.ToggleUrgent):
		m.urgent = !m.urgent
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		val := m.input.Value()
		if m.mode == modeIntake {
			c, err := m.desk.Intake(val, m.urgent)
			if err != nil {
				// Keep the prompt open so the name can be corrected.
				m.showError(err)
				return m, nil
			}
			m = m.closeInput()
			line := fmt.Sprintf("Case #%d registered for %s", c.ID(), c.Student())
			if c.Urgent() {
				line += " (urgent)"
			}
			m.showMinibuffer(line)
			return m, nil
		}
		if err := m.desk.AddNote(val); err != nil {
			m.showError(err)
			return m, nil
		}
		m = m.closeInput()
		m.noteIdx = 0
		m.showMinibuffer("Note added")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateStatusPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNormal
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.mode = modeNormal
		it, ok := m.status.SelectedItem().(statusItem)
		if !ok {
			return m, nil
		}
		ch, err := m.desk.ChangeStatus(model.Status(it))
		if err != nil {
			m.showError(err)
			return m, nil
		}
		m.showMinibuffer(fmt.Sprintf("Case #%d: %s %s %s", ch.CaseID, ch.From, glyphArrow(), ch.To))
		return m, nil
	}
	var cmd tea.Cmd
	m.status, cmd = m.status.Update(msg)
	return m, cmd
}
