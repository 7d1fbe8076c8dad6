// Package toast is a transient one-line notification for Bubble Tea
// programs. Only one message is visible at a time: showing a new one
// replaces the old one and restarts the timer.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultDuration is how long a message stays up unless told otherwise.
const DefaultDuration = 2 * time.Second

// ExpiredMsg is delivered when a message's timer fires.
type ExpiredMsg struct{ seq int }

type Model struct {
	Duration   time.Duration
	InfoStyle  lipgloss.Style
	ErrorStyle lipgloss.Style

	text    string
	isError bool
	seq     int
}

func New(d time.Duration) Model {
	if d <= 0 {
		d = DefaultDuration
	}
	return Model{
		Duration:   d,
		InfoStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		ErrorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// Show displays text for the default duration.
func (m *Model) Show(text string) tea.Cmd { return m.show(text, false, m.Duration) }

// ShowError is Show with the error style.
func (m *Model) ShowError(text string) tea.Cmd { return m.show(text, true, m.Duration) }

// ShowFor displays text for d.
func (m *Model) ShowFor(text string, d time.Duration) tea.Cmd { return m.show(text, false, d) }

func (m *Model) show(text string, isError bool, d time.Duration) tea.Cmd {
	if d <= 0 {
		d = DefaultDuration
	}
	m.seq++
	m.text = text
	m.isError = isError
	seq := m.seq
	return tea.Tick(d, func(time.Time) tea.Msg { return ExpiredMsg{seq: seq} })
}

// Update hides the message when its own timer fires. Timers of replaced
// messages are ignored. It reports whether msg belonged to the toast.
func (m *Model) Update(msg tea.Msg) bool {
	exp, ok := msg.(ExpiredMsg)
	if !ok {
		return false
	}
	if exp.seq == m.seq {
		m.text = ""
		m.isError = false
	}
	return true
}

func (m Model) Visible() bool { return m.text != "" }
func (m Model) Text() string  { return m.text }

func (m Model) View() string {
	if m.text == "" {
		return ""
	}
	if m.isError {
		return m.ErrorStyle.Render(m.text)
	}
	return m.InfoStyle.Render(m.text)
}
