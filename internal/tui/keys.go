package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Intake    key.Binding
	Attend    key.Binding
	Note      key.Binding
	DelNote   key.Binding
	Up        key.Binding
	Down      key.Binding
	Status    key.Binding
	Finalize  key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Completed key.Binding
	Pending   key.Binding
	Quit      key.Binding

	Submit       key.Binding
	Cancel       key.Binding
	ToggleUrgent key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Intake:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "intake")),
		Attend:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attend")),
		Note:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "note")),
		DelNote:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "del note")),
		Up:        key.NewBinding(key.WithKeys("up", "k", "ctrl+p")),
		Down:      key.NewBinding(key.WithKeys("down", "j", "ctrl+n")),
		Status:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Finalize:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finalize")),
		Undo:      key.NewBinding(key.WithKeys("z", "ctrl+z"), key.WithHelp("z", "undo")),
		Redo:      key.NewBinding(key.WithKeys("y", "ctrl+y"), key.WithHelp("y", "redo")),
		Completed: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "completed")),
		Pending:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "save pending")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit:       key.NewBinding(key.WithKeys("enter")),
		Cancel:       key.NewBinding(key.WithKeys("esc", "ctrl+g")),
		ToggleUrgent: key.NewBinding(key.WithKeys("tab")),
	}
}

// footerBindings are always listed in the footer, in order.
// Undo, redo and quit are appended by the view.
func (k keyMap) footerBindings() []key.Binding {
	return []key.Binding{k.Intake, k.Attend, k.Note, k.DelNote, k.Status, k.Finalize, k.Completed, k.Pending}
}
