package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/securix/internal/clipboard"
	"github.com/Makepad-fr/securix/internal/logging"
	"github.com/Makepad-fr/securix/internal/model"
	"github.com/Makepad-fr/securix/internal/passbook"
	"github.com/Makepad-fr/securix/internal/store"
	"github.com/Makepad-fr/securix/internal/store/memstore"
	"github.com/Makepad-fr/securix/internal/toast"
	"github.com/Makepad-fr/securix/internal/view"
)

type fakeCopier struct {
	out    clipboard.Outcome
	copied []string
}

func (f *fakeCopier) Copy(text string) clipboard.Outcome {
	f.copied = append(f.copied, text)
	return f.out
}

type fixture struct {
	backend *memstore.Backend
	store   *store.Records
	copier  *fakeCopier
	svc     *passbook.Service
}

func newFixture(t *testing.T, seed ...model.Record) fixture {
	t.Helper()
	b := memstore.New()
	s := store.New(b)
	for _, r := range seed {
		require.NoError(t, s.Append(context.Background(), r))
	}
	c := &fakeCopier{out: clipboard.Copied}
	return fixture{backend: b, store: s, copier: c, svc: passbook.New(s, c, logging.Discard())}
}

func (f fixture) model() Model {
	return New(context.Background(), f.svc, Options{Toast: toast.New(time.Millisecond)})
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	down     = tea.KeyMsg{Type: tea.KeyDown}
)

func fill(m *Model, website, username, password string) {
	m.inputs[fieldWebsite].SetValue(website)
	m.inputs[fieldUsername].SetValue(username)
	m.inputs[fieldPassword].SetValue(password)
}

func TestNew_EmptyStoreShowsPlaceholder(t *testing.T) {
	m := newFixture(t).model()

	assert.Empty(t, m.rows)
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, view.Placeholder, m.table.Rows()[0][0])
	assert.Contains(t, m.View(), view.Placeholder)
	assert.Equal(t, fieldWebsite, m.focus)
}

func TestSubmit_TypedIntoForm(t *testing.T) {
	f := newFixture(t)
	m := f.model()

	m, _ = press(t, m, runes("a.com"), tab, runes("bob"), tab, runes("xyz"), enter)

	records, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{Website: "a.com", Username: "bob", Password: "xyz"}}, records)
	assert.Equal(t, "Password saved", m.toast.Text())
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, []string{"a.com", "bob", "***"}, []string(m.table.Rows()[0]))
	for i := range m.inputs {
		assert.Empty(t, m.inputs[i].Value(), "input %d not reset", i)
	}
	assert.Equal(t, fieldWebsite, m.focus)
}

func TestSubmit_EmptyUsername(t *testing.T) {
	f := newFixture(t)
	m := f.model()
	fill(&m, "a.com", "", "xyz")

	m, _ = press(t, m, enter)

	assert.Equal(t, "Please fill all fields", m.toast.Text())
	assert.Zero(t, f.backend.Writes())
	assert.Equal(t, "a.com", m.inputs[fieldWebsite].Value(), "a rejected form keeps its input")
}

func TestRender_ResetsFormAndIsIdempotent(t *testing.T) {
	m := newFixture(t, model.Record{Website: "a.com", Username: "bob", Password: "xyz"}).model()

	fill(&m, "x", "y", "z")
	m.render()
	first := m.table.Rows()
	for i := range m.inputs {
		assert.Empty(t, m.inputs[i].Value())
	}

	fill(&m, "x", "y", "z")
	m.render()
	assert.Equal(t, first, m.table.Rows())
	for i := range m.inputs {
		assert.Empty(t, m.inputs[i].Value())
	}
}

func TestDelete_RemovesAllForWebsiteAndResetsForm(t *testing.T) {
	f := newFixture(t,
		model.Record{Website: "a.com", Username: "bob", Password: "xyz"},
		model.Record{Website: "a.com", Username: "carl", Password: "123"},
	)
	m := f.model()
	m, _ = press(t, m, esc)
	require.Equal(t, focusTable, m.focus)
	fill(&m, "half", "typed", "")

	m, _ = press(t, m, runes("d"))

	records, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "Deleted a.com's password", m.toast.Text())
	assert.Equal(t, view.Placeholder, m.table.Rows()[0][0])
	assert.Empty(t, m.inputs[fieldWebsite].Value())
	assert.Empty(t, m.inputs[fieldUsername].Value())
}

func TestDelete_OnPlaceholderDoesNothing(t *testing.T) {
	f := newFixture(t)
	m := f.model()
	m, _ = press(t, m, shiftTab)
	require.Equal(t, focusTable, m.focus)

	m, cmd := press(t, m, runes("d"))

	assert.Nil(t, cmd)
	assert.Zero(t, f.backend.Writes())
	assert.False(t, m.toast.Visible())
}

func TestCopy_UsesRawValuesOfSelectedRow(t *testing.T) {
	f := newFixture(t,
		model.Record{Website: "a.com", Username: "bob", Password: "xyz"},
		model.Record{Website: "b.com", Username: "eve", Password: "s3cret"},
	)
	m := f.model()
	m, _ = press(t, m, esc, down)

	for _, k := range []string{"w", "u", "p"} {
		var cmd tea.Cmd
		m, cmd = press(t, m, runes(k))
		require.NotNil(t, cmd)
		next, _ := m.Update(cmd())
		m = next.(Model)
		assert.Equal(t, "Copied to clipboard", m.toast.Text())
	}
	assert.Equal(t, []string{"b.com", "eve", "s3cret"}, f.copier.copied)
}

func TestCopy_FailureNotifies(t *testing.T) {
	f := newFixture(t, model.Record{Website: "a.com", Username: "bob", Password: "xyz"})
	f.copier.out = clipboard.Failed
	m := f.model()
	m, _ = press(t, m, esc)

	m, cmd := press(t, m, runes("p"))
	next, _ := m.Update(cmd())
	m = next.(Model)

	assert.Equal(t, "Copy failed", m.toast.Text())
}

func TestFocusCycle(t *testing.T) {
	m := newFixture(t).model()

	m, _ = press(t, m, tab)
	assert.Equal(t, fieldUsername, m.focus)
	m, _ = press(t, m, tab, tab)
	assert.Equal(t, focusTable, m.focus)
	assert.True(t, m.table.Focused())
	m, _ = press(t, m, tab)
	assert.Equal(t, fieldWebsite, m.focus)
	assert.False(t, m.table.Focused())
	m, _ = press(t, m, esc, runes("a"))
	assert.Equal(t, fieldWebsite, m.focus)
}

func TestQuit(t *testing.T) {
	m := newFixture(t).model()

	// q types into the form
	m, _ = press(t, m, runes("q"))
	assert.Equal(t, "q", m.inputs[fieldWebsite].Value())

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPasswordInputIsMasked(t *testing.T) {
	m := newFixture(t).model()
	m, _ = press(t, m, shiftTab, shiftTab, runes("hunter2"))

	require.Equal(t, fieldPassword, m.focus)
	assert.NotContains(t, m.View(), "hunter2")
}
