package form

import (
	"github.com/charmbracelet/huh"

	"github.com/Makepad-fr/tada/internal/model"
)

// NewAddForm asks for a title, a category and an optional due date, writing
// the answers into in. Fields validate as the user types, with the same
// rules Parse applies afterwards.
func NewAddForm(in *AddInput) *huh.Form {
	if in.Category == "" {
		in.Category = string(model.Personal)
	}

	opts := make([]huh.Option[string], 0, len(model.Categories))
	for _, c := range model.Categories {
		opts = append(opts, huh.NewOption(c.Label(), string(c)))
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("title").
			Title("Todo").
			Placeholder("Add a new todo...").
			CharLimit(MaxTitleLen).
			Validate(ValidateTitle).
			Value(&in.Title),
		huh.NewSelect[string]().
			Key("category").
			Title("Category").
			Options(opts...).
			Value(&in.Category),
		huh.NewInput().
			Key("due").
			Title("Due date").
			Placeholder("YYYY-MM-DD (optional)").
			Validate(ValidateDue).
			Value(&in.Due),
	))
}
