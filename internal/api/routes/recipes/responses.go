package recipes

import (
	"github.com/matt-dz/silviakaka/internal/pagination"
	"github.com/matt-dz/silviakaka/internal/recipe"
)

type ListRecipesResponse pagination.Page[recipe.Recipe]

type GetRecipeResponse struct {
	recipe.Recipe
}

type SearchResponse struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Results []recipe.Recipe `json:"results"`
}
