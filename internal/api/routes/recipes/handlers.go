// Package recipes contains handlers for the public recipe endpoints.
package recipes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apiError "github.com/matt-dz/silviakaka/internal/api/error"
	"github.com/matt-dz/silviakaka/internal/api/requestid"
	"github.com/matt-dz/silviakaka/internal/api/response"
	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/pagination"
	"github.com/matt-dz/silviakaka/internal/query"
	"github.com/matt-dz/silviakaka/internal/search"
	"github.com/matt-dz/silviakaka/internal/slugs"
	"github.com/matt-dz/silviakaka/internal/store"
)

// HandleListRecipes godoc
//
//	@Summary		List recipes.
//	@Description	Filters, sorts and paginates the recipe collection.
//	@Description	Filters use the listing filter document, e.g.
//	@Description	{"recipeCategory": {"type": "contains", "filter": "kladdkaka"}}.
//	@Tags			Recipes
//	@Produce		json
//
//	@Param			page		query		int		false	"1-based page number"
//	@Param			limit		query		int		false	"Page size"
//	@Param			filters		query		string	false	"Filter document"
//	@Param			orderBy		query		string	false	"Field to sort by, default datePublished"
//	@Param			direction	query		string	false	"asc or desc, default desc"
//
//	@Success		200			{object}	ListRecipesResponse
//	@Success		304			"Not Modified"
//	@Failure		400			{object}	apiError.Error	"Bad Request"
//	@Router			/api/recipes [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	// Read query
	env.Logger.DebugContext(ctx, "Reading query parameters")
	request, err := parseListRequest(r.URL.Query(), env.Site.PageSize())
	if err != nil {
		env.Logger.InfoContext(ctx, "Failed to parse query parameters", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "page and limit must be integers", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.InfoContext(ctx, "Failed to validate query parameters", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid query parameters", requestID)
		return
	}
	filters, err := query.ParseFilters(request.Filters)
	if err != nil {
		env.Logger.InfoContext(ctx, "Malformed filter", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.MalformedFilter, err.Error(), requestID)
		return
	}
	direction, err := query.ParseDirection(request.Direction)
	if err != nil {
		env.Logger.InfoContext(ctx, "Malformed sort direction", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.MalformedFilter, err.Error(), requestID)
		return
	}

	if response.NotModified(w, r, env.Store.Version()) {
		return
	}

	// List recipes
	env.Logger.DebugContext(ctx, "Listing recipes")
	page, err := env.Store.List(store.ListOptions{
		Page:      request.Page,
		PageSize:  request.Limit,
		Filters:   filters,
		OrderBy:   request.OrderBy,
		Direction: direction,
	})
	if errors.Is(err, query.ErrMalformedFilter) {
		env.Logger.InfoContext(ctx, "Malformed sort field", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.MalformedFilter, err.Error(), requestID)
		return
	} else if errors.Is(err, pagination.ErrInvalidPage) {
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to list recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	response.WriteJSON(w, r, http.StatusOK, ListRecipesResponse(page))
}

// HandleGetRecipe godoc
//
//	@Summary		Get a recipe by slug.
//	@Description	Former slugs are permanently redirected to the current one.
//	@Tags			Recipes
//	@Produce		json
//
//	@Param			slug	path		string	true	"Recipe slug"
//
//	@Success		200		{object}	GetRecipeResponse
//	@Success		301		"Moved Permanently"
//	@Failure		404		{object}	apiError.Error	"Recipe not found"
//	@Router			/api/recipes/{slug} [GET]
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	slug := chi.URLParam(r, "slug")

	env.Logger.DebugContext(ctx, "Resolving slug", slog.String("slug", slug))
	res, err := env.Resolver.Resolve(slug)
	if errors.Is(err, slugs.ErrNotFound) {
		env.Logger.InfoContext(ctx, "Recipe not found", slog.String("slug", slug))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to resolve slug", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if res.Redirect() {
		env.Logger.InfoContext(ctx, "Redirecting former slug",
			slog.String("from", res.RequestedSlug), slog.String("to", res.ResolvedSlug))
		http.Redirect(w, r, "/api/recipes/"+res.ResolvedSlug, http.StatusMovedPermanently)
		return
	}

	if response.NotModified(w, r, env.Store.Version()) {
		return
	}
	response.WriteJSON(w, r, http.StatusOK, GetRecipeResponse{Recipe: res.Recipe})
}

// HandleSearch godoc
//
//	@Summary		Search recipes.
//	@Description	Case-insensitive substring search over name, description,
//	@Description	keywords and ingredients. A blank query returns no results.
//	@Tags			Recipes
//	@Produce		json
//
//	@Param			q	query		string	false	"Search text"
//
//	@Success		200	{object}	SearchResponse
//	@Failure		429	{object}	apiError.Error	"Too Many Requests"
//	@Router			/api/search [GET]
func HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	q := r.URL.Query().Get("q")

	env.Logger.DebugContext(ctx, "Searching recipes", slog.String("query", q))
	results := search.Search(q, env.Store.All())
	response.WriteJSON(w, r, http.StatusOK, SearchResponse{
		Query:   q,
		Count:   len(results),
		Results: results,
	})
}
