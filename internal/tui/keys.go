package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next, Prev, Submit, Leave     key.Binding
	Up, Down                      key.Binding
	CopyWebsite, CopyUser, CopyPw key.Binding
	Delete, Add, Quit             key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Leave:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "to table")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		CopyWebsite: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "copy website")),
		CopyUser:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "copy user")),
		CopyPw:      key.NewBinding(key.WithKeys("p", "c"), key.WithHelp("p", "copy password")),
		Delete:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// formKeys is the help shown while typing in the form.
type formKeys struct{ k keyMap }

func (f formKeys) ShortHelp() []key.Binding {
	return []key.Binding{f.k.Next, f.k.Prev, f.k.Submit, f.k.Leave}
}
func (f formKeys) FullHelp() [][]key.Binding { return [][]key.Binding{f.ShortHelp()} }

// tableKeys is the help shown while the table has focus.
type tableKeys struct{ k keyMap }

func (t tableKeys) ShortHelp() []key.Binding {
	return []key.Binding{t.k.Up, t.k.Down, t.k.CopyWebsite, t.k.CopyUser, t.k.CopyPw, t.k.Delete, t.k.Add, t.k.Quit}
}
func (t tableKeys) FullHelp() [][]key.Binding { return [][]key.Binding{t.ShortHelp()} }
