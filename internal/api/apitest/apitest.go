// Package apitest builds environments and requests for handler tests.
package apitest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	apiError "github.com/matt-dz/silviakaka/internal/api/error"
	"github.com/matt-dz/silviakaka/internal/category"
	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/persist"
	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/sitegen"
	"github.com/matt-dz/silviakaka/internal/store"
)

// Recipes is a small collection, newest first.
func Recipes() []recipe.Recipe {
	return []recipe.Recipe{
		{
			ID: "silviakaka", Slug: "silviakaka-langpanna", FormerSlugs: []string{"silviakaka"},
			Name: "Silviakaka i långpanna", RecipeCategory: "Silviakaka", DatePublished: "2024-04-01",
			Ingredients: []recipe.Ingredient{{Unit: "g", Amount: "150", Product: "smör"}, {Product: "kokos"}},
		},
		{
			ID: "kladdkaka", Slug: "kladdkaka", Name: "Kladdkaka", RecipeCategory: "Kladdkaka",
			DatePublished: "2024-03-01", Description: "Saftig chokladkaka",
		},
		{
			ID: "vit-kladdkaka", Slug: "vit-kladdkaka-recept", Name: "Vit kladdkaka", RecipeCategory: "Kladdkaka",
			DatePublished: "2024-02-01",
		},
		{
			ID: "kanelbullar", Slug: "kanelbullar", Name: "Kanelbullar", RecipeCategory: "Bullar",
			DatePublished: "2024-01-01",
		},
	}
}

// NewEnv returns an env over an in-memory collection and the embedded
// taxonomy.
func NewEnv(t *testing.T, recipes []recipe.Recipe, opts ...sitegen.Option) (*env.Env, *persist.Memory) {
	t.Helper()
	mem := persist.NewMemory(recipes)
	st, err := store.New(context.Background(), mem)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	return env.New(nil, st, category.Default(), opts...), mem
}

// Serve runs handler behind a chi router mounted at pattern, with e in the
// request context.
func Serve(e *env.Env, method, pattern string, handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.MethodFunc(method, pattern, handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r.WithContext(env.WithCtx(r.Context(), e)))
	return rec
}

func DecodeJSON(t *testing.T, body io.Reader, dst any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

// ExpectError checks an API error response.
func ExpectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code apiError.ErrorCode) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var e apiError.Error
	DecodeJSON(t, rec.Body, &e)
	if e.Code != code {
		t.Errorf("code = %q, want %q", e.Code, code)
	}
}
