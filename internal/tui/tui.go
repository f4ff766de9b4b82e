// Package tui is the interactive todo list. Every change goes straight to
// the store, which saves it; the list on screen is rebuilt from the store's
// filtered view after each one.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/ui"
)

type mode int

const (
	browsing mode = iota
	adding
	editing
	searching
	filling
)

// listItem adapts a todo to bubbles/list.Item
type listItem struct {
	todo model.Todo
	pos  int
}

func (i listItem) Title() string       { return i.todo.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	theme ui.Theme
	today model.Date
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+ui.Line(d.theme, it.pos, it.todo, d.today))
}

// Options configure a session.
type Options struct {
	Theme ui.Theme
	Now   func() time.Time
}

// Model implements tea.Model over a todo store.
type Model struct {
	store  *todos.Store
	list   list.Model
	ti     textinput.Model // shared by add, edit and search
	keys   keyMap
	theme  ui.Theme
	filter todos.Filter
	now    func() time.Time

	mode     mode
	editID   string
	addForm  *huh.Form
	addIn    *form.AddInput
	inputErr string
	status   string

	// Single-level undo of the last delete.
	undo *model.Todo

	width, height int
}

func New(s *todos.Store, opt Options) Model {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Theme.Name == "" {
		opt.Theme = ui.Lookup(ui.Dark)
	}

	keys := defaultKeys()
	l := list.New(nil, itemDelegate{theme: opt.Theme}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	// Search is the store's substring filter, not the list's fuzzy one.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("todo", "todos")
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown", "f"), key.WithHelp("→/l/pgdn", "next page"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "h", "pgup", "b"), key.WithHelp("←/h/pgup", "prev page"))
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = form.MaxTitleLen

	m := Model{
		store:  s,
		list:   l,
		ti:     ti,
		keys:   keys,
		theme:  opt.Theme,
		filter: todos.Filter{Status: model.StatusAll},
		now:    opt.Now,
		width:  80,
		height: 24,
	}
	m.list.SetSize(m.width-4, m.height-5)
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and returns the theme the
// user ended on.
func Run(s *todos.Store, opt Options) (ui.Theme, error) {
	p := tea.NewProgram(New(s, opt), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return opt.Theme, err
	}
	fm, ok := final.(Model)
	if !ok {
		return opt.Theme, nil
	}
	return fm.theme, nil
}

// Theme is the theme currently on screen.
func (m Model) Theme() ui.Theme { return m.theme }

// Filter is the filter currently applied to the list.
func (m Model) Filter() todos.Filter { return m.filter }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Force) {
		return m, tea.Quit
	}

	if m.mode == filling {
		return m.updateForm(msg)
	}

	if m.mode != browsing {
		if km, ok := msg.(tea.KeyMsg); ok {
			return m.updateInput(km)
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := m.handleKey(km); handled {
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.selected(); ok {
			m.store.Toggle(it.todo.ID)
			m.afterChange("")
		}
		return nil, true

	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok {
			removed := it.todo
			m.undo = &removed
			m.store.Remove(removed.ID)
			m.afterChange("deleted " + removed.Title)
		}
		return nil, true

	case key.Matches(msg, m.keys.Undo):
		if m.undo != nil {
			u := *m.undo
			m.undo = nil
			restored := m.store.Add(u.Title, u.Category, u.DueDate)
			if u.Completed {
				done := true
				m.store.Update(restored.ID, model.Patch{Completed: &done})
			}
			m.afterChange("restored " + u.Title)
			m.list.Select(0)
		}
		return nil, true

	case key.Matches(msg, m.keys.Add):
		return m.openInput(adding, "", "New todo title..."), true

	case key.Matches(msg, m.keys.AddForm):
		m.addIn = &form.AddInput{Category: string(m.newCategory())}
		m.addForm = form.NewAddForm(m.addIn).WithWidth(max(m.width-8, 20))
		m.mode = filling
		m.status = ""
		return m.addForm.Init(), true

	case key.Matches(msg, m.keys.Edit):
		if it, ok := m.selected(); ok {
			m.editID = it.todo.ID
			return m.openInput(editing, it.todo.Title, "Edit todo title..."), true
		}
		return nil, true

	case key.Matches(msg, m.keys.Search):
		return m.openInput(searching, m.filter.Search, "Search todos..."), true

	case key.Matches(msg, m.keys.Status):
		m.filter.Status = m.filter.Status.Next()
		m.refresh()
		return nil, true

	case key.Matches(msg, m.keys.Category):
		m.filter.Category = nextCategory(m.filter.Category)
		m.refresh()
		return nil, true

	case key.Matches(msg, m.keys.Clear):
		n := m.store.ClearCompleted()
		m.afterChange(fmt.Sprintf("cleared %d completed", n))
		return nil, true

	case key.Matches(msg, m.keys.Theme):
		m.theme = m.theme.Toggle()
		m.refresh()
		return nil, true
	}
	return nil, false
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		switch m.mode {
		case adding:
			if err := form.ValidateTitle(m.ti.Value()); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			title := strings.TrimSpace(m.ti.Value())
			m.store.Add(title, m.newCategory(), nil)
			m.closeInput()
			m.afterChange("added " + title)
			m.list.Select(0)
		case editing:
			if err := form.ValidateTitle(m.ti.Value()); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			title := strings.TrimSpace(m.ti.Value())
			m.store.Update(m.editID, model.Patch{Title: &title})
			m.closeInput()
			m.afterChange("")
		case searching:
			m.closeInput()
		}
		return m, nil

	case "esc":
		if m.mode == searching {
			m.filter.Search = ""
			m.refresh()
		}
		m.closeInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	m.inputErr = ""
	if m.mode == searching {
		m.filter.Search = m.ti.Value()
		m.refresh()
	}
	return m, cmd
}

// updateForm drives the detailed add form. esc drops it; a completed form
// is validated once more and added.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	fm, cmd := m.addForm.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		m.addForm = f
	}

	switch m.addForm.State {
	case huh.StateCompleted:
		v, err := form.Parse(*m.addIn)
		m.closeForm()
		if err != nil {
			m.status = err.Error()
			m.refresh()
			return m, nil
		}
		m.store.Add(v.Title, v.Category, v.Due)
		m.afterChange("added " + v.Title)
		m.list.Select(0)
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.mode = browsing
	m.addForm = nil
	m.addIn = nil
}

func (m *Model) openInput(md mode, value, placeholder string) tea.Cmd {
	m.mode = md
	m.inputErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	return m.ti.Focus()
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.editID = ""
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

// newCategory files inline adds under the category being viewed.
func (m Model) newCategory() model.Category {
	if m.filter.Category != "" {
		return m.filter.Category
	}
	return model.Personal
}

func (m Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

// afterChange rebuilds the list and reports a failed save in the status line.
func (m *Model) afterChange(status string) {
	m.status = status
	if err := m.store.Err(); err != nil {
		m.status = "save failed: " + err.Error()
	}
	m.refresh()
}

func (m *Model) refresh() {
	positions := make(map[string]int, m.store.Len())
	for i, t := range m.store.All() {
		positions[t.ID] = i + 1
	}
	view := m.store.View(m.filter)
	items := make([]list.Item, 0, len(view))
	for _, t := range view {
		items = append(items, listItem{todo: t, pos: positions[t.ID]})
	}

	idx := m.list.Index()
	m.list.SetDelegate(itemDelegate{theme: m.theme, today: model.DateOf(m.now())})
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}

	m.list.Title = ui.Header(m.theme, m.store.Counts())
	m.list.Styles.Title = lipgloss.NewStyle()
	m.list.Styles.HelpStyle = m.theme.Help
	m.list.Styles.PaginationStyle = m.theme.Help
	m.list.Styles.StatusBar = m.theme.Muted
}

func nextCategory(c model.Category) model.Category {
	if c == "" {
		return model.Categories[0]
	}
	for i, cat := range model.Categories {
		if cat == c && i+1 < len(model.Categories) {
			return model.Categories[i+1]
		}
	}
	return ""
}

func (m Model) filterLine() string {
	search := m.filter.Search
	if search == "" {
		search = "-"
	}
	status := m.filter.Status
	if status == "" {
		status = model.StatusAll
	}
	line := fmt.Sprintf("status: %s  category: %s  search: %s  theme: %s",
		status, strings.ToLower(m.filter.Category.Label()), search, m.theme.Name)
	if m.status != "" {
		line += "  · " + m.status
	}
	return m.theme.Help.Render(line)
}

func (m Model) View() string {
	listHeight := m.height - 5
	switch m.mode {
	case browsing:
	case filling:
		listHeight -= 12
	default:
		listHeight -= 4
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(m.width-4, listHeight)

	content := m.list.View()
	if len(m.list.Items()) == 0 {
		content += "\n" + m.theme.Muted.Render(ui.EmptyMessage(m.filter))
	}
	content += "\n" + m.filterLine()

	if m.mode == filling {
		bar := lipgloss.NewStyle().Border(m.theme.Border).BorderForeground(m.theme.BorderColor).Padding(0, 1)
		content += "\n" + bar.Render("Add new todo\n"+m.addForm.View())
	} else if m.mode != browsing {
		bar := lipgloss.NewStyle().Border(m.theme.Border).BorderForeground(m.theme.BorderColor).Padding(0, 1)
		title := map[mode]string{adding: "Add new todo", editing: "Edit todo", searching: "Search"}[m.mode]
		if m.inputErr != "" {
			title += " - " + m.theme.Error.Render(m.inputErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.Panel(m.theme, []string{content})
}
