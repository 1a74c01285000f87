package admin

import "github.com/matt-dz/silviakaka/internal/recipe"

type ListRecipesResponse struct {
	Version string          `json:"version"`
	Recipes []recipe.Recipe `json:"recipes"`
}

type RecipeResponse struct {
	Version string        `json:"version"`
	Recipe  recipe.Recipe `json:"recipe"`
}

type ReloadResponse struct {
	Version string `json:"version"`
	Count   int    `json:"count"`
}

type UploadResponse recipe.Image
