// Package form validates user input before it reaches the todo store and
// turns validation failures into the messages shown next to each field.
package form

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Makepad-fr/tada/internal/model"
)

// MaxTitleLen is the longest title accepted, in characters.
const MaxTitleLen = 200

var validate = validator.New()

// AddInput is the raw text of a new todo.
type AddInput struct {
	Title    string `validate:"required,max=200"`
	Category string `validate:"required,oneof=work personal shopping"`
	Due      string `validate:"omitempty,datetime=2006-01-02"`
}

// Valid is input that passed validation.
type Valid struct {
	Title    string
	Category model.Category
	Due      *model.Date
}

// FieldError is one inline message.
type FieldError struct {
	Field   string
	Message string
}

// Error collects every failing field of one submission.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Message returns the message for field, or "".
func (e *Error) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Parse validates in. The title is trimmed first so whitespace-only titles
// count as empty.
func Parse(in AddInput) (Valid, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Due = strings.TrimSpace(in.Due)

	if err := validate.Struct(in); err != nil {
		return Valid{}, toError(err)
	}

	out := Valid{Title: in.Title, Category: model.Category(in.Category)}
	if in.Due != "" {
		d, err := model.ParseDate(in.Due)
		if err != nil {
			return Valid{}, &Error{Fields: []FieldError{{Field: "Due", Message: message("Due", "datetime")}}}
		}
		out.Due = &d
	}
	return out, nil
}

// EditInput holds the fields an edit changes. Nil means keep.
type EditInput struct {
	Title    *string
	Category *string
	Due      *string
	NoDue    bool
}

// ParseEdit validates the present fields with the same rules as Parse.
func ParseEdit(in EditInput) (model.Patch, error) {
	var (
		p    model.Patch
		errs []FieldError
	)
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if fe := check("Title", title, "required,max=200"); fe != nil {
			errs = append(errs, *fe)
		} else {
			p.Title = &title
		}
	}
	if in.Category != nil {
		cat := strings.ToLower(strings.TrimSpace(*in.Category))
		if fe := check("Category", cat, "required,oneof=work personal shopping"); fe != nil {
			errs = append(errs, *fe)
		} else {
			c := model.Category(cat)
			p.Category = &c
		}
	}
	if in.Due != nil && !in.NoDue {
		due := strings.TrimSpace(*in.Due)
		if fe := check("Due", due, "required,datetime=2006-01-02"); fe != nil {
			errs = append(errs, *fe)
		} else if d, err := model.ParseDate(due); err == nil {
			p.DueDate = &d
		}
	}
	p.ClearDueDate = in.NoDue
	if len(errs) > 0 {
		return model.Patch{}, &Error{Fields: errs}
	}
	return p, nil
}

// ValidateTitle is the title rule on its own, for interactive inputs.
func ValidateTitle(s string) error {
	return fieldErr(check("Title", strings.TrimSpace(s), "required,max=200"))
}

// ValidateDue accepts an empty string or a YYYY-MM-DD date.
func ValidateDue(s string) error {
	return fieldErr(check("Due", strings.TrimSpace(s), "omitempty,datetime=2006-01-02"))
}

func check(field, value, tag string) *FieldError {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: field, Message: message(field, verrs[0].Tag())}
	}
	return &FieldError{Field: field, Message: err.Error()}
}

func fieldErr(fe *FieldError) error {
	if fe == nil {
		return nil
	}
	return errors.New(fe.Message)
}

func toError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{}
	for _, ve := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: ve.Field(), Message: message(ve.Field(), ve.Tag())})
	}
	return out
}

func message(field, tag string) string {
	switch field + "." + tag {
	case "Title.required":
		return "Todo title is required"
	case "Title.max":
		return "Title must be less than 200 characters"
	case "Category.required":
		return "Category is required"
	case "Category.oneof":
		return "Category must be one of work, personal or shopping"
	case "Due.required", "Due.datetime":
		return "Due date must look like 2026-01-31"
	}
	return field + " is invalid"
}
