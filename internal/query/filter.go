// Package query implements the filter and sort specifications applied by
// listing queries.
package query

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/textmatch"
)

type Kind string

const (
	Contains    Kind = "contains"
	NotContains Kind = "notContains"
)

// Filter is a single predicate on a string field of a recipe.
type Filter struct {
	Kind  Kind   `json:"kind"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// Validate rejects unknown kinds and fields that are not string fields of a
// recipe.
func (f Filter) Validate() error {
	if f.Kind != Contains && f.Kind != NotContains {
		return &MalformedFilterError{Field: f.Field, Reason: `unknown filter kind "` + string(f.Kind) + `"`}
	}
	if !recipe.IsField(f.Field) {
		return &MalformedFilterError{Field: f.Field, Reason: "unknown field"}
	}
	return nil
}

// Match reports whether r satisfies the filter. Comparison ignores case. An
// empty field never matches Contains and always satisfies NotContains.
func (f Filter) Match(r recipe.Recipe) bool {
	value, _ := r.Field(f.Field)
	switch f.Kind {
	case Contains:
		return value != "" && textmatch.Contains(value, f.Value)
	case NotContains:
		return value == "" || !textmatch.Contains(value, f.Value)
	}
	return false
}

// legacyFilter is one entry of the filter object accepted by listing pages,
// e.g. {"recipeCategory": {"type": "contains", "filter": "kladdkaka"}}.
type legacyFilter struct {
	Type   *string `json:"type"`
	Filter *string `json:"filter"`
}

// ParseFilters parses the JSON object form of a filter specification. An
// empty string means no filters. Filters are returned ordered by field.
func ParseFilters(raw string) ([]Filter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var obj map[string]legacyFilter
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, &MalformedFilterError{Reason: "invalid JSON", Err: err}
	}

	fields := make([]string, 0, len(obj))
	for field := range obj {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	filters := make([]Filter, 0, len(fields))
	for _, field := range fields {
		entry := obj[field]
		if entry.Type == nil {
			return nil, &MalformedFilterError{Field: field, Reason: "missing type"}
		}
		if entry.Filter == nil {
			return nil, &MalformedFilterError{Field: field, Reason: "missing filter value"}
		}
		f := Filter{Kind: Kind(*entry.Type), Field: field, Value: *entry.Filter}
		if err := f.Validate(); err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// Apply returns the recipes matching every filter, in their original order.
// The filters are validated first.
func Apply(recipes []recipe.Recipe, filters []Filter) ([]recipe.Recipe, error) {
	for _, f := range filters {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}

	out := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if matchAll(r, filters) {
			out = append(out, r)
		}
	}
	return out, nil
}

func matchAll(r recipe.Recipe, filters []Filter) bool {
	for _, f := range filters {
		if !f.Match(r) {
			return false
		}
	}
	return true
}
