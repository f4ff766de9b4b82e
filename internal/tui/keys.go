package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle   key.Binding
	Delete   key.Binding
	Undo     key.Binding
	Add      key.Binding
	AddForm  key.Binding
	Edit     key.Binding
	Search   key.Binding
	Status   key.Binding
	Category key.Binding
	Clear    key.Binding
	Theme    key.Binding
	Quit     key.Binding
	Force    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		AddForm:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add with details")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Status:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "status")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear done")),
		Theme:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "theme")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Force:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Delete, k.Search}
}

func (k keyMap) full() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.AddForm, k.Edit, k.Delete, k.Undo, k.Search, k.Status, k.Category, k.Clear, k.Theme}
}
