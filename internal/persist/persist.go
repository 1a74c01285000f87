// Package persist reads and writes the recipe collection as a single JSON
// document. Every backend loads the whole document and replaces it wholesale
// on save; there are no partial writes.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/matt-dz/silviakaka/internal/recipe"
)

//go:generate mockgen -source=persist.go -destination=persistmock/persister.go -package=persistmock

// Persister loads and saves the whole collection.
type Persister interface {
	Load(ctx context.Context) ([]recipe.Recipe, error)
	Save(ctx context.Context, recipes []recipe.Recipe) error
}

var ErrNotArray = errors.New("recipe document must be a JSON array")

// Encode renders the collection the way the admin panel always wrote it:
// a two-space indented JSON array. A record's Extra fields are written next
// to the modelled ones.
func Encode(recipes []recipe.Recipe) ([]byte, error) {
	records := make([]json.RawMessage, 0, len(recipes))
	for _, r := range recipes {
		record, err := encodeRecord(r)
		if err != nil {
			return nil, fmt.Errorf("encoding recipe %q: %w", r.ID, err)
		}
		records = append(records, record)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding recipes: %w", err)
	}
	return append(data, '\n'), nil
}

func encodeRecord(r recipe.Recipe) (json.RawMessage, error) {
	data, err := json.Marshal(r)
	if err != nil || len(r.Extra) == 0 {
		return data, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for name, value := range r.Extra {
		if _, ok := fields[name]; !ok {
			fields[name] = value
		}
	}
	return json.Marshal(fields)
}

// Decode parses a recipe document. An empty document is an empty collection.
// Fields Recipe does not model are kept in Extra.
func Decode(data []byte) ([]recipe.Recipe, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []recipe.Recipe{}, nil
	}
	if data[0] != '[' {
		return nil, ErrNotArray
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding recipes: %w", err)
	}
	recipes := make([]recipe.Recipe, 0, len(records))
	for i, record := range records {
		r, err := decodeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("decoding recipe %d: %w", i, err)
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

func decodeRecord(record json.RawMessage) (recipe.Recipe, error) {
	var r recipe.Recipe
	if err := json.Unmarshal(record, &r); err != nil {
		return recipe.Recipe{}, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(record, &fields); err != nil {
		return recipe.Recipe{}, err
	}
	for name := range fields {
		if _, ok := knownFields[name]; ok {
			delete(fields, name)
		}
	}
	if len(fields) > 0 {
		r.Extra = fields
	}
	return r, nil
}

// knownFields are the JSON names of the fields Recipe models.
var knownFields = jsonNames(reflect.TypeFor[recipe.Recipe]())

func jsonNames(t reflect.Type) map[string]struct{} {
	names := make(map[string]struct{}, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		names[name] = struct{}{}
	}
	return names
}
