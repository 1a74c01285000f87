// Package site contains handlers that serve the data the static site build
// renders: the page manifest and one view per kind of page.
package site

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apiError "github.com/matt-dz/silviakaka/internal/api/error"
	"github.com/matt-dz/silviakaka/internal/api/requestid"
	"github.com/matt-dz/silviakaka/internal/api/response"
	"github.com/matt-dz/silviakaka/internal/category"
	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/query"
	"github.com/matt-dz/silviakaka/internal/sitegen"
)

// HandleHome godoc
//
//	@Summary	Homepage data.
//	@Tags		Site
//	@Produce	json
//
//	@Success	200	{object}	sitegen.HomeView
//	@Router		/api/home [GET]
func HandleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	if response.NotModified(w, r, env.Store.Version()) {
		return
	}
	view, err := env.Site.Home()
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to build homepage", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.ExtractRequestID(ctx))
		return
	}
	response.WriteJSON(w, r, http.StatusOK, view)
}

// HandleListing godoc
//
//	@Summary		One page of the default listing.
//	@Description	The first page always exists. Later pages exist only when
//	@Description	they have recipes.
//	@Tags			Site
//	@Produce		json
//
//	@Param			page	path		int		true	"1-based page number"
//	@Param			filters	query		string	false	"Filter document"
//
//	@Success		200		{object}	sitegen.ListingView
//	@Failure		400		{object}	apiError.Error	"Malformed filter"
//	@Failure		404		{object}	apiError.Error	"Page not found"
//	@Router			/api/listing/{page} [GET]
func HandleListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		env.Logger.InfoContext(ctx, "Listing page is not a number", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.PageNotFound, "page not found", requestID)
		return
	}

	view, err := env.Site.Listing(ctx, page, r.URL.Query().Get("filters"))
	if errors.Is(err, sitegen.ErrPageNotFound) {
		_ = apiError.EncodeError(w, apiError.PageNotFound, "page not found", requestID)
		return
	} else if errors.Is(err, query.ErrMalformedFilter) {
		env.Logger.InfoContext(ctx, "Malformed listing filter", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.MalformedFilter, err.Error(), requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to build listing", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, view)
}

// HandleCategories godoc
//
//	@Summary	Every category with a preview of its newest recipes.
//	@Tags		Site
//	@Produce	json
//
//	@Param		limit	query		int	false	"Recipes per category"
//
//	@Success	200		{object}	CategoriesResponse
//	@Failure	400		{object}	apiError.Error	"Bad Request"
//	@Router		/api/categories [GET]
func HandleCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	limit := category.DefaultPreviewLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			env.Logger.InfoContext(ctx, "Invalid preview limit", slog.String("limit", raw))
			_ = apiError.EncodeError(w, apiError.BadRequest, "limit must be a positive integer",
				requestid.ExtractRequestID(ctx))
			return
		}
		limit = v
	}

	groups, err := env.Site.Categories(limit)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to group categories", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.ExtractRequestID(ctx))
		return
	}
	response.WriteJSON(w, r, http.StatusOK, CategoriesResponse{Categories: groups})
}

// HandleCategory godoc
//
//	@Summary	A category page.
//	@Tags		Site
//	@Produce	json
//
//	@Param		slug	path		string	true	"Category slug"
//
//	@Success	200		{object}	sitegen.CategoryView
//	@Failure	404		{object}	apiError.Error	"Category not found"
//	@Router		/api/categories/{slug} [GET]
func HandleCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	slug := chi.URLParam(r, "slug")

	view, err := env.Site.CategoryPage(slug)
	if errors.Is(err, sitegen.ErrPageNotFound) {
		env.Logger.InfoContext(ctx, "Category not found", slog.String("slug", slug))
		_ = apiError.EncodeError(w, apiError.CategoryNotFound, "category not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to build category page", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, view)
}

// HandlePillar godoc
//
//	@Summary	A curated pillar page.
//	@Tags		Site
//	@Produce	json
//
//	@Param		slug	path		string	true	"Pillar slug"
//
//	@Success	200		{object}	sitegen.PillarView
//	@Failure	404		{object}	apiError.Error	"Page not found"
//	@Router		/api/pillars/{slug} [GET]
func HandlePillar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	slug := chi.URLParam(r, "slug")

	view, err := env.Site.PillarPage(slug)
	if errors.Is(err, sitegen.ErrPageNotFound) {
		_ = apiError.EncodeError(w, apiError.PageNotFound, "page not found", requestid.ExtractRequestID(ctx))
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to build pillar page", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.ExtractRequestID(ctx))
		return
	}
	response.WriteJSON(w, r, http.StatusOK, view)
}

// HandlePaths godoc
//
//	@Summary		Every path the static build generates.
//	@Description	Fails when the listing pages and the recipe pages would not
//	@Description	enumerate the same slugs.
//	@Tags			Site
//	@Produce		json
//
//	@Success		200	{object}	PathsResponse
//	@Failure		500	{object}	apiError.Error	"Internal Server Error"
//	@Router			/api/paths [GET]
func HandlePaths(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	if response.NotModified(w, r, env.Store.Version()) {
		return
	}
	manifest, err := env.Site.Manifest()
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to build manifest", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.ExtractRequestID(ctx))
		return
	}
	response.WriteJSON(w, r, http.StatusOK, PathsResponse{Manifest: manifest, Paths: manifest.Paths()})
}
