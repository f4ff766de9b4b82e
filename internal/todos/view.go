package todos

import (
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// Filter narrows the collection for display. Zero values select everything:
// an empty Status or StatusAll, an empty Search, and an empty Category.
type Filter struct {
	Status   model.Status
	Search   string
	Category model.Category
}

// Match reports whether t passes all three filters.
func (f Filter) Match(t model.Todo) bool {
	return f.MatchStatus(t) && f.MatchSearch(t) && f.MatchCategory(t)
}

func (f Filter) MatchStatus(t model.Todo) bool {
	switch f.Status {
	case model.StatusActive:
		return !t.Completed
	case model.StatusCompleted:
		return t.Completed
	}
	return true
}

// MatchSearch is a case-insensitive substring match on the title.
func (f Filter) MatchSearch(t model.Todo) bool {
	return strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search))
}

func (f Filter) MatchCategory(t model.Todo) bool {
	return f.Category == "" || t.Category == f.Category
}

// Narrowed reports whether a search or category filter is active; the
// status filter alone does not count.
func (f Filter) Narrowed() bool {
	return f.Search != "" || f.Category != ""
}

// View returns the todos matching f in store order.
func (s *Store) View(f Filter) []model.Todo {
	var out []model.Todo
	for _, t := range s.items {
		if f.Match(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Counts always covers the whole collection, whatever filter is on screen.
type Counts struct {
	Total     int
	Active    int
	Completed int
}

func (s *Store) Counts() Counts {
	var c Counts
	c.Total = len(s.items)
	for _, t := range s.items {
		if t.Completed {
			c.Completed++
		}
	}
	c.Active = c.Total - c.Completed
	return c
}

// Position is the 1-based place of id in the full collection, 0 when absent.
func (s *Store) Position(id string) int {
	return s.indexOf(id) + 1
}
