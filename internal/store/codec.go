package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tada/internal/model"
)

// ErrDuplicateID means a decoded collection repeats an id.
var ErrDuplicateID = errors.New("duplicate todo id")

//go:embed todos.schema.json
var todosSchemaJSON string

var todosSchema = jsonschema.MustCompileString("https://github.com/Makepad-fr/tada/todos.schema.json", todosSchemaJSON)

// Encode writes the collection as an indented JSON array with a trailing newline.
// The format is the record list itself; there is no version field.
func Encode(items []model.Todo) ([]byte, error) {
	if items == nil {
		items = []model.Todo{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

// Decode checks b against the todos schema before unmarshalling it.
func Decode(b []byte) ([]model.Todo, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := todosSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	var items []model.Todo
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return items, nil
}
