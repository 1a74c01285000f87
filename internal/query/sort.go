package query

import (
	"slices"

	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/textmatch"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultSortField orders listings newest first together with Desc.
const DefaultSortField = "datePublished"

// ParseDirection parses asc or desc. An empty string defaults to desc.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "":
		return Desc, nil
	case Asc, Desc:
		return Direction(s), nil
	}
	return "", &MalformedFilterError{Reason: `unknown sort direction "` + s + `"`}
}

// Sort sorts recipes in place by field. The sort is stable in both
// directions: records that compare equal keep their relative order.
// datePublished compares as calendar dates with missing dates at the epoch;
// every other field compares case-insensitively.
func Sort(recipes []recipe.Recipe, field string, dir Direction) error {
	if field == "" {
		field = DefaultSortField
	}
	if !recipe.IsField(field) {
		return &MalformedFilterError{Field: field, Reason: "unknown sort field"}
	}
	if dir == "" {
		dir = Desc
	}
	if dir != Asc && dir != Desc {
		return &MalformedFilterError{Field: field, Reason: `unknown sort direction "` + string(dir) + `"`}
	}

	cmp := compareField(field)
	slices.SortStableFunc(recipes, func(a, b recipe.Recipe) int {
		if dir == Desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return nil
}

func compareField(field string) func(a, b recipe.Recipe) int {
	if field == DefaultSortField {
		return func(a, b recipe.Recipe) int {
			return a.PublishedAt().Compare(b.PublishedAt())
		}
	}
	return func(a, b recipe.Recipe) int {
		va, _ := a.Field(field)
		vb, _ := b.Field(field)
		return textmatch.Compare(va, vb)
	}
}
