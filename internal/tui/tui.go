// Package tui is the interactive password book: an entry form above a
// table of stored records, with a one-line toast for feedback.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/securix/internal/clipboard"
	"github.com/Makepad-fr/securix/internal/model"
	"github.com/Makepad-fr/securix/internal/passbook"
	"github.com/Makepad-fr/securix/internal/toast"
	"github.com/Makepad-fr/securix/internal/ui"
	"github.com/Makepad-fr/securix/internal/view"
)

const (
	fieldWebsite = iota
	fieldUsername
	fieldPassword
	focusTable
	focusCount
)

var fieldLabels = [3]string{"Website", "Username", "Password"}

// copiedMsg carries the result of an asynchronous clipboard write.
type copiedMsg struct{ outcome clipboard.Outcome }

type Model struct {
	ctx  context.Context
	svc  *passbook.Service
	keys keyMap

	inputs [3]textinput.Model
	focus  int

	table table.Model
	rows  []view.Row // aligned with table rows; empty when the placeholder shows

	toast toast.Model
	help  help.Model
	width int
}

// Options tune the interactive program.
type Options struct {
	Toast toast.Model
}

// New builds the model and renders the stored records once.
func New(ctx context.Context, svc *passbook.Service, opt Options) Model {
	th := ui.Current()

	m := Model{
		ctx:   ctx,
		svc:   svc,
		keys:  defaultKeys(),
		toast: opt.Toast,
		help:  help.New(),
		focus: fieldWebsite,
	}
	if m.toast.Duration == 0 {
		m.toast = toast.New(toast.DefaultDuration)
	}
	m.toast.InfoStyle = th.Success
	m.toast.ErrorStyle = th.Error

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = 256
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.inputs[fieldPassword].EchoCharacter = '*'
	m.inputs[fieldWebsite].Focus()

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(th.BorderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = th.Selected
	t.SetStyles(s)
	m.table = t
	m.help.Styles.ShortKey = th.Accent
	m.help.Styles.ShortDesc = th.Help

	m.render()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, svc *passbook.Service, opt Options) error {
	p := tea.NewProgram(New(ctx, svc, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func columns(width int) []table.Column {
	// borders + padding
	avail := width - 12
	if avail < 30 {
		avail = 30
	}
	return []table.Column{
		{Title: "Website", Width: avail * 4 / 10},
		{Title: "Username", Width: avail * 3 / 10},
		{Title: "Password", Width: avail * 3 / 10},
	}
}

// render reloads the records, rebuilds the table and clears the form.
// The form is cleared on every render, including after a delete.
func (m *Model) render() tea.Cmd {
	var cmd tea.Cmd
	records, err := m.svc.Records(m.ctx)
	if err != nil {
		records = nil
		cmd = m.toast.ShowError("load: " + err.Error())
	}
	tbl := view.Build(records)
	m.rows = tbl.Rows
	if tbl.Empty {
		m.table.SetRows([]table.Row{{view.Placeholder, "", ""}})
	} else {
		rows := make([]table.Row, 0, len(tbl.Rows))
		for _, r := range tbl.Rows {
			rows = append(rows, table.Row(r.Cells()))
		}
		m.table.SetRows(rows)
	}
	if m.table.Cursor() >= len(m.table.Rows()) {
		m.table.SetCursor(len(m.table.Rows()) - 1)
	}
	if m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	return cmd
}

func (m *Model) setFocus(f int) tea.Cmd {
	m.focus = (f + focusCount) % focusCount
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	if m.focus == focusTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
	return cmd
}

// selected returns the row under the cursor, if any.
func (m Model) selected() (view.Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return view.Row{}, false
	}
	return m.rows[i], true
}

func (m *Model) submit() tea.Cmd {
	msg, err := m.svc.Submit(m.ctx,
		m.inputs[fieldWebsite].Value(),
		m.inputs[fieldUsername].Value(),
		m.inputs[fieldPassword].Value(),
	)
	if errors.Is(err, model.ErrEmptyField) {
		return m.toast.ShowError(msg)
	}
	if err != nil {
		return m.toast.ShowError(err.Error())
	}
	cmd := m.toast.Show(msg)
	return tea.Batch(cmd, m.render(), m.setFocus(fieldWebsite))
}

func (m *Model) remove(row view.Row) tea.Cmd {
	website := row.Action(view.Delete).Value
	msg, err := m.svc.Delete(m.ctx, website)
	if err != nil {
		return m.toast.ShowError(err.Error())
	}
	cmd := m.toast.Show(msg)
	return tea.Batch(cmd, m.render())
}

// copyCmd runs the clipboard write off the update loop.
func (m Model) copyCmd(a view.Action) tea.Cmd {
	svc := m.svc
	text := a.Value
	return func() tea.Msg { return copiedMsg{outcome: svc.Copy(text)} }
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.toast.Update(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		h := msg.Height - 16
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
		m.help.Width = msg.Width
		return m, nil

	case copiedMsg:
		if msg.outcome.OK() {
			return m, m.toast.Show(msg.outcome.Message())
		}
		return m, m.toast.ShowError(msg.outcome.Message())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus(m.focus - 1)
		}
		if m.focus == focusTable {
			return m.updateTable(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m, m.submit()
		case key.Matches(msg, m.keys.Leave):
			return m, m.setFocus(focusTable)
		}
	}

	if m.focus == focusTable {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), msg.String() == "esc":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		return m, m.setFocus(fieldWebsite)
	}

	row, ok := m.selected()
	switch {
	case key.Matches(msg, m.keys.CopyWebsite):
		if ok {
			return m, m.copyCmd(row.Action(view.CopyWebsite))
		}
		return m, nil
	case key.Matches(msg, m.keys.CopyUser):
		if ok {
			return m, m.copyCmd(row.Action(view.CopyUsername))
		}
		return m, nil
	case key.Matches(msg, m.keys.CopyPw):
		if ok {
			return m, m.copyCmd(row.Action(view.CopyPassword))
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if ok {
			return m, m.remove(row)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	th := ui.Current()

	title := fmt.Sprintf("%s   %s %d", th.Title.Render("Securix"), th.Accent.Render("Stored"), len(m.rows))

	var form string
	for i, in := range m.inputs {
		label := fmt.Sprintf("%-9s", fieldLabels[i])
		prefix := "  "
		if i == m.focus {
			label = th.Focused.Render(label)
			prefix = th.Focused.Render("> ")
		} else {
			label = th.Muted.Render(label)
		}
		form += prefix + label + " " + in.View() + "\n"
	}

	var helpView string
	if m.focus == focusTable {
		helpView = m.help.View(tableKeys{m.keys})
	} else {
		helpView = m.help.View(formKeys{m.keys})
	}

	return ui.Panel(
		title,
		"",
		form,
		m.table.View(),
		"",
		m.toast.View(),
		helpView,
	)
}
