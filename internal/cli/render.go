package cli

import (
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/ui"
)

// listing renders the `ls` panel: counts header, progress over the whole
// collection, then the filtered todos.
type listing struct {
	theme ui.Theme
	store *todos.Store
	today model.Date
}

func (l listing) lines(f todos.Filter, group bool) []string {
	c := l.store.Counts()

	var lines []string
	lines = append(lines, ui.Header(l.theme, c))
	lines = append(lines, l.theme.Muted.Render(ui.ProgressBar(c.Completed, c.Total, 28)))
	lines = append(lines, "")

	view := l.store.View(f)
	switch {
	case len(view) == 0:
		lines = append(lines, l.theme.Muted.Render(ui.EmptyMessage(f)))
	case group:
		lines = append(lines, l.grouped(view)...)
	default:
		lines = append(lines, l.flat(view)...)
	}

	lines = append(lines, "")
	lines = append(lines, l.theme.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func (l listing) flat(items []model.Todo) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, ui.Line(l.theme, l.store.Position(t.ID), t, l.today))
	}
	return out
}

func (l listing) grouped(items []model.Todo) []string {
	var pend, done []model.Todo
	for _, t := range items {
		if t.Completed {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, l.section("Pending", pend)...)
	lines = append(lines, "")
	lines = append(lines, l.section("Done", done)...)
	return lines
}

func (l listing) section(title string, items []model.Todo) []string {
	lines := []string{l.theme.Accent.Render(title)}
	if len(items) == 0 {
		return append(lines, l.theme.Muted.Render("(none)"))
	}
	return append(lines, l.flat(items)...)
}
