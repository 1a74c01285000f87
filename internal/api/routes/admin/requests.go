package admin

import "github.com/matt-dz/silviakaka/internal/recipe"

type RecipeRequest struct {
	recipe.Recipe
}

type UploadRequest struct {
	Kind string `validate:"omitempty,oneof=recipes steps"`
	Name string `validate:"max=120"`
}
