package ui

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todos"
)

// maxTitleWidth is where long titles get cut in list lines.
const maxTitleWidth = 80

// Header is the counts line shown above every list.
func Header(t Theme, c todos.Counts) string {
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), c.Completed,
		t.Pending.Render(t.SymPending), c.Active,
		t.Accent.Render("Total"), c.Total,
	)
}

// Badge renders a category tag.
func Badge(t Theme, c model.Category) string {
	style, ok := t.Categories[c]
	if !ok {
		return "[" + string(c) + "]"
	}
	return style.Padding(0, 1).Render(string(c))
}

// Due renders a due date, highlighted when the todo is overdue.
func Due(t Theme, td model.Todo, today model.Date) string {
	if td.DueDate == nil {
		return ""
	}
	s := "due " + td.DueDate.String()
	if td.Overdue(today) {
		return t.Overdue.Render(s + " (overdue)")
	}
	return t.Muted.Render(s)
}

// Line renders one todo: position, checkbox, title, category and due date.
// pos is the 1-based place in the full collection; 0 leaves it out.
func Line(t Theme, pos int, td model.Todo, today model.Date) string {
	box := t.Muted.Render(t.BoxUnchecked)
	title := truncate(td.Title, maxTitleWidth)
	if td.Completed {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}

	s := fmt.Sprintf("%s %s %s", box, title, Badge(t, td.Category))
	if pos > 0 {
		s = t.Muted.Render(fmt.Sprintf("%2d.", pos)) + " " + s
	}
	if due := Due(t, td, today); due != "" {
		s += " " + due
	}
	return s
}

// EmptyMessage is shown when a view has no todos.
func EmptyMessage(f todos.Filter) string {
	if f.Narrowed() {
		return "No todos match your filters"
	}
	return "No todos yet. Add one to get started!"
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
