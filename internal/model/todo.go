package model

import (
	"fmt"
	"strings"
	"time"
)

// Todo is the domain model for a todo entry.
// ID and CreatedAt are assigned once by the store and never change.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Category  Category  `json:"category"`
	DueDate   *Date     `json:"dueDate,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Overdue reports whether t is still open after its due date.
func (t Todo) Overdue(today Date) bool {
	return t.DueDate != nil && !t.Completed && t.DueDate.Before(today)
}

// Clone returns a copy of t that shares no memory with it.
func (t Todo) Clone() Todo {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// Category groups todos.
type Category string

const (
	Work     Category = "work"
	Personal Category = "personal"
	Shopping Category = "shopping"
)

// Categories lists every category in display order.
var Categories = []Category{Work, Personal, Shopping}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case Work, Personal, Shopping:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// Label is the capitalized name shown in filters and forms.
func (c Category) Label() string {
	if c == "" {
		return "All"
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Status selects todos by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Statuses lists the status filters in display order.
var Statuses = []Status{StatusAll, StatusActive, StatusCompleted}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "", StatusAll:
		return StatusAll, nil
	case StatusActive, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Next cycles all -> active -> completed -> all.
func (s Status) Next() Status {
	switch s {
	case StatusActive:
		return StatusCompleted
	case StatusCompleted:
		return StatusAll
	}
	return StatusActive
}

// Patch names the fields an update replaces. Nil fields are left alone.
type Patch struct {
	Title     *string
	Category  *Category
	Completed *bool
	DueDate   *Date
	// ClearDueDate drops the due date; it wins over DueDate.
	ClearDueDate bool
}

// Empty reports whether applying p would change nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Category == nil && p.Completed == nil && p.DueDate == nil && !p.ClearDueDate
}

// Apply returns t with the patched fields replaced.
func (p Patch) Apply(t Todo) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.ClearDueDate {
		t.DueDate = nil
	}
	return t
}
