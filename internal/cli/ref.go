package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

var (
	ErrRefNotFound  = errors.New("no todo matches")
	ErrAmbiguousRef = errors.New("ambiguous todo reference")
)

const indexHint = "Hint: run `todo ls` to see valid indexes"

// resolveRef finds the todo a command argument names. A number is a 1-based
// index into items, the unfiltered list as `todo ls` prints it. Anything
// else is an id or a unique id prefix.
func resolveRef(items []model.Todo, ref string) (model.Todo, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Todo{}, usagef("empty todo reference")
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return model.Todo{}, &usageError{
				msg:  fmt.Sprintf("index out of range: have %d, got %d", len(items), n),
				hint: indexHint,
				err:  ErrRefNotFound,
			}
		}
		return items[n-1], nil
	}

	var matches []model.Todo
	for _, t := range items {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Todo{}, &usageError{msg: fmt.Sprintf("%s %q", ErrRefNotFound, ref), hint: indexHint, err: ErrRefNotFound}
	case 1:
		return matches[0], nil
	}
	return model.Todo{}, &usageError{
		msg:  fmt.Sprintf("%s %q: matches %d todos", ErrAmbiguousRef, ref, len(matches)),
		hint: "Hint: use more characters of the id",
		err:  ErrAmbiguousRef,
	}
}
