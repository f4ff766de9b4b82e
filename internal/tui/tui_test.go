package tui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/ui"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEscape}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	ctrlD = tea.KeyMsg{Type: tea.KeyCtrlD}
	ctrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, s *todos.Store) Model {
	t.Helper()
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	return New(s, Options{Theme: ui.Lookup(ui.Mono), Now: func() time.Time { return now }})
}

func newTestStore() *todos.Store {
	n := 0
	return todos.New(todos.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func visibleTitles(m Model) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.(listItem).todo.Title)
	}
	return out
}

func TestInlineAdd(t *testing.T) {
	s := newTestStore()
	m := newTestModel(t, s)

	m = press(t, m, runes("a"), runes("Buy milk"), enter)

	require.Equal(t, 1, s.Len())
	td := s.All()[0]
	assert.Equal(t, "Buy milk", td.Title)
	assert.Equal(t, model.Personal, td.Category)
	assert.Equal(t, []string{"Buy milk"}, visibleTitles(m))
	assert.Equal(t, browsing, m.mode)
}

func TestInlineAddRejectsBlankTitle(t *testing.T) {
	s := newTestStore()
	m := newTestModel(t, s)

	m = press(t, m, runes("a"), runes("   "), enter)

	assert.Zero(t, s.Len())
	assert.Equal(t, adding, m.mode)
	assert.Equal(t, "Todo title is required", m.inputErr)
	assert.Contains(t, m.View(), "Todo title is required")

	m = press(t, m, esc)
	assert.Equal(t, browsing, m.mode)
}

func TestInlineAddUsesCategoryFilter(t *testing.T) {
	s := newTestStore()
	m := newTestModel(t, s)

	m = press(t, m, runes("c"))
	assert.Equal(t, model.Work, m.Filter().Category)

	press(t, m, runes("a"), runes("Standup"), enter)
	assert.Equal(t, model.Work, s.All()[0].Category)
}

func TestToggleDeleteUndo(t *testing.T) {
	s := newTestStore()
	s.Add("A", model.Work, nil)
	s.Add("B", model.Shopping, nil)
	m := newTestModel(t, s)

	m = press(t, m, space)
	b, _ := s.Get("id-2")
	assert.True(t, b.Completed)

	m = press(t, m, runes("d"))
	assert.Equal(t, []string{"A"}, visibleTitles(m))

	m = press(t, m, runes("u"))
	assert.Equal(t, []string{"B", "A"}, visibleTitles(m))
	restored := s.All()[0]
	assert.Equal(t, "B", restored.Title)
	assert.Equal(t, model.Shopping, restored.Category)
	assert.True(t, restored.Completed)

	// Only one level of undo.
	m = press(t, m, runes("u"))
	assert.Equal(t, 2, s.Len())
}

func TestEdit(t *testing.T) {
	s := newTestStore()
	td := s.Add("Buy milk", model.Shopping, nil)
	m := newTestModel(t, s)

	m = press(t, m, runes("e"))
	assert.Equal(t, "Buy milk", m.ti.Value())

	press(t, m, runes(" today"), enter)
	got, _ := s.Get(td.ID)
	assert.Equal(t, "Buy milk today", got.Title)
	assert.Equal(t, model.Shopping, got.Category)
}

func TestStatusCycleAndClear(t *testing.T) {
	s := newTestStore()
	s.Add("A", model.Work, nil)
	b := s.Add("B", model.Work, nil)
	s.Toggle(b.ID)
	m := newTestModel(t, s)

	m = press(t, m, tab)
	assert.Equal(t, model.StatusActive, m.Filter().Status)
	assert.Equal(t, []string{"A"}, visibleTitles(m))

	m = press(t, m, tab)
	assert.Equal(t, []string{"B"}, visibleTitles(m))

	m = press(t, m, runes("x"))
	assert.Empty(t, visibleTitles(m))
	assert.Equal(t, 1, s.Len())
	assert.Contains(t, m.View(), "No todos yet. Add one to get started!")

	m = press(t, m, tab)
	assert.Equal(t, model.StatusAll, m.Filter().Status)
}

func TestSearchFiltersLive(t *testing.T) {
	s := newTestStore()
	s.Add("Buy milk", model.Shopping, nil)
	s.Add("Write report", model.Work, nil)
	m := newTestModel(t, s)

	m = press(t, m, runes("/"), runes("MILK"))
	assert.Equal(t, []string{"Buy milk"}, visibleTitles(m))

	m = press(t, m, enter)
	assert.Equal(t, browsing, m.mode)
	assert.Equal(t, "MILK", m.Filter().Search)

	m = press(t, m, runes("/"), runes("zzz"))
	assert.Contains(t, m.View(), "No todos match your filters")

	m = press(t, m, esc)
	assert.Empty(t, m.Filter().Search)
	assert.Len(t, visibleTitles(m), 2)
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(t, newTestStore())

	m = press(t, m, ctrlD)
	assert.Equal(t, ui.Dark, m.Theme().Name)
	m = press(t, m, ctrlD)
	assert.Equal(t, ui.Light, m.Theme().Name)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, newTestStore())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestSaveFailureShownInStatusLine(t *testing.T) {
	slot := store.NewMemory()
	slot.SetErr = errors.New("disk full")
	s := todos.Open(slot)
	m := newTestModel(t, s)

	m = press(t, m, runes("a"), runes("A"), enter)

	assert.Equal(t, 1, s.Len())
	assert.Contains(t, m.View(), "save failed: disk full")
}

func TestPositionsReferToFullList(t *testing.T) {
	s := newTestStore()
	s.Add("A", model.Work, nil)
	s.Add("B", model.Shopping, nil)
	m := newTestModel(t, s)

	m = press(t, m, runes("c"))
	items := m.list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].(listItem).pos)
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, newTestStore())
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestCtrlCQuitsFromEveryMode(t *testing.T) {
	s := newTestStore()
	s.Add("A", model.Work, nil)

	for _, open := range []string{"", "a", "e", "/", "A"} {
		t.Run("mode "+open, func(t *testing.T) {
			m := newTestModel(t, s)
			if open != "" {
				m = press(t, m, runes(open))
			}
			_, cmd := m.Update(ctrlC)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestDetailedAddForm(t *testing.T) {
	s := newTestStore()
	m := newTestModel(t, s)

	m = press(t, m, runes("c"), runes("A"))
	require.Equal(t, filling, m.mode)
	assert.Equal(t, string(model.Work), m.addIn.Category, "starts on the viewed category")
	assert.Contains(t, m.View(), "Due date")

	m.addIn.Title = "Pay rent"
	m.addIn.Category = string(model.Shopping)
	m.addIn.Due = "2026-11-01"
	m.addForm.State = huh.StateCompleted
	m = press(t, m, runes("z"))

	assert.Equal(t, browsing, m.mode)
	require.Equal(t, 1, s.Len())
	td := s.All()[0]
	assert.Equal(t, "Pay rent", td.Title)
	assert.Equal(t, model.Shopping, td.Category)
	require.NotNil(t, td.DueDate)
	assert.Equal(t, "2026-11-01", td.DueDate.String())
}

func TestDetailedAddFormCancel(t *testing.T) {
	s := newTestStore()
	m := newTestModel(t, s)

	m = press(t, m, runes("A"), esc)
	assert.Equal(t, browsing, m.mode)
	assert.Nil(t, m.addForm)
	assert.Zero(t, s.Len())
}
