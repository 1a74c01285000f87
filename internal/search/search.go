// Package search does a full substring scan over a recipe snapshot. There is
// no index; every query looks at every recipe.
package search

import (
	"strings"

	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/textmatch"
)

// Search returns the recipes whose name, description, keywords or any
// ingredient product contains the query, ignoring case, in snapshot order.
// A blank query matches nothing.
func Search(query string, snapshot []recipe.Recipe) []recipe.Recipe {
	results := []recipe.Recipe{}
	needle := textmatch.Fold(strings.TrimSpace(query))
	if needle == "" {
		return results
	}

	for _, r := range snapshot {
		if matches(r, needle) {
			results = append(results, r)
		}
	}
	return results
}

func matches(r recipe.Recipe, needle string) bool {
	for _, field := range []string{r.Name, r.Description, r.Keywords} {
		if strings.Contains(textmatch.Fold(field), needle) {
			return true
		}
	}
	for _, ingredient := range r.Ingredients {
		if strings.Contains(textmatch.Fold(ingredient.Product), needle) {
			return true
		}
	}
	return false
}
