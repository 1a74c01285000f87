// Package admin contains handlers for editing the recipe collection.
package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apiError "github.com/matt-dz/silviakaka/internal/api/error"
	"github.com/matt-dz/silviakaka/internal/api/requestid"
	"github.com/matt-dz/silviakaka/internal/api/response"
	"github.com/matt-dz/silviakaka/internal/buildhook"
	"github.com/matt-dz/silviakaka/internal/env"
	mJson "github.com/matt-dz/silviakaka/internal/json"
	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/store"
)

// HandleListRecipes godoc
//
//	@Summary	List every recipe in storage order.
//	@Tags		Admin
//	@Produce	json
//
//	@Success	200	{object}	ListRecipesResponse
//	@Failure	401	{object}	apiError.Error	"Unauthorized"
//	@Security	BearerAuth
//	@Router		/api/admin/recipes [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	env := env.EnvFromCtx(r.Context())
	version := env.Store.Version()
	w.Header().Set(response.ETagHeader, response.ETag(version))
	response.WriteJSON(w, r, http.StatusOK, ListRecipesResponse{
		Version: version,
		Recipes: env.Store.All(),
	})
}

// HandleCreateRecipe godoc
//
//	@Summary		Create a recipe.
//	@Description	A missing slug is derived from the name and a missing id
//	@Description	from the slug. The new recipe is listed first.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//
//	@Param			request		body		RecipeRequest	true	"Recipe"
//	@Param			If-Match	header		string			false	"Expected collection version"
//
//	@Success		201			{object}	RecipeResponse
//	@Failure		400			{object}	apiError.Error	"Bad Request"
//	@Failure		409			{object}	apiError.Error	"Status Conflict"
//	@Failure		412			{object}	apiError.Error	"Precondition Failed"
//	@Failure		422			{object}	apiError.Error	"Unprocessible Entity"
//	@Security		BearerAuth
//	@Router			/api/admin/recipes [POST]
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	request, ok := decodeRecipe(w, r)
	if !ok {
		return
	}
	rec := request.Recipe
	recipe.Normalize(&rec)

	env.Logger.DebugContext(ctx, "Inserting recipe", slog.String("slug", rec.Slug))
	created, err := env.Store.Insert(ctx, rec, writeOptions(r)...)
	if err != nil {
		encodeStoreError(w, r, err)
		return
	}

	version := notify(r, buildhook.ActionCreated, created)
	w.Header().Set(response.ETagHeader, response.ETag(version))
	w.Header().Set("Location", "/api/recipes/"+created.Slug)
	response.WriteJSON(w, r, http.StatusCreated, RecipeResponse{Version: version, Recipe: created})
}

// HandleUpdateRecipe godoc
//
//	@Summary		Replace a recipe.
//	@Description	Changing the slug keeps the old one in the slug history so
//	@Description	it redirects to the new one.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//
//	@Param			id			path		string			true	"Recipe ID"
//	@Param			request		body		RecipeRequest	true	"Recipe"
//	@Param			If-Match	header		string			false	"Expected collection version"
//
//	@Success		200			{object}	RecipeResponse
//	@Failure		400			{object}	apiError.Error	"Bad Request"
//	@Failure		404			{object}	apiError.Error	"Recipe not found"
//	@Failure		409			{object}	apiError.Error	"Status Conflict"
//	@Failure		412			{object}	apiError.Error	"Precondition Failed"
//	@Failure		422			{object}	apiError.Error	"Unprocessible Entity"
//	@Security		BearerAuth
//	@Router			/api/admin/recipes/{id} [PUT]
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)
	id := chi.URLParam(r, "id")

	request, ok := decodeRecipe(w, r)
	if !ok {
		return
	}
	rec := request.Recipe
	if rec.ID != "" && rec.ID != id {
		env.Logger.InfoContext(ctx, "Recipe id does not match path",
			slog.String("path_id", id), slog.String("body_id", rec.ID))
		_ = apiError.EncodeError(w, apiError.BadRequest, "recipe id does not match path", requestID)
		return
	}
	rec.ID = id
	recipe.Normalize(&rec)

	env.Logger.DebugContext(ctx, "Updating recipe", slog.String("id", id))
	updated, err := env.Store.Update(ctx, rec, writeOptions(r)...)
	if err != nil {
		encodeStoreError(w, r, err)
		return
	}

	version := notify(r, buildhook.ActionUpdated, updated)
	w.Header().Set(response.ETagHeader, response.ETag(version))
	response.WriteJSON(w, r, http.StatusOK, RecipeResponse{Version: version, Recipe: updated})
}

// HandleDeleteRecipe godoc
//
//	@Summary		Delete a recipe.
//	@Description	Uploaded images the recipe references are removed as well.
//	@Tags			Admin
//
//	@Param			id			path	string	true	"Recipe ID"
//	@Param			If-Match	header	string	false	"Expected collection version"
//
//	@Success		204
//	@Failure		404	{object}	apiError.Error	"Recipe not found"
//	@Failure		412	{object}	apiError.Error	"Precondition Failed"
//	@Security		BearerAuth
//	@Router			/api/admin/recipes/{id} [DELETE]
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	id := chi.URLParam(r, "id")

	env.Logger.DebugContext(ctx, "Deleting recipe", slog.String("id", id))
	removed, err := env.Store.Delete(ctx, id, writeOptions(r)...)
	if err != nil {
		encodeStoreError(w, r, err)
		return
	}
	removeImages(r, removed)

	version := notify(r, buildhook.ActionDeleted, removed)
	w.Header().Set(response.ETagHeader, response.ETag(version))
	w.WriteHeader(http.StatusNoContent)
}

// HandleReload godoc
//
//	@Summary		Reload the collection from storage.
//	@Description	Picks up edits made to the persisted document directly.
//	@Tags			Admin
//	@Produce		json
//
//	@Success		200	{object}	ReloadResponse
//	@Failure		500	{object}	apiError.Error	"Internal Server Error"
//	@Security		BearerAuth
//	@Router			/api/admin/reload [POST]
func HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	env.Logger.InfoContext(ctx, "Reloading recipes")
	if err := env.Store.Reload(ctx); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to reload recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.ExtractRequestID(ctx))
		return
	}

	version := notify(r, buildhook.ActionReload, recipe.Recipe{})
	w.Header().Set(response.ETagHeader, response.ETag(version))
	response.WriteJSON(w, r, http.StatusOK, ReloadResponse{Version: version, Count: env.Store.Len()})
}

func decodeRecipe(w http.ResponseWriter, r *http.Request) (RecipeRequest, bool) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	var request RecipeRequest
	env.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	if err := mJson.Decode(r.Body, &request); err != nil {
		env.Logger.InfoContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestid.ExtractRequestID(ctx))
		return RecipeRequest{}, false
	}
	return request, true
}

func writeOptions(r *http.Request) []store.WriteOption {
	if version := response.IfMatch(r); version != "" {
		return []store.WriteOption{store.IfVersion(version)}
	}
	return nil
}

func encodeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	switch {
	case errors.Is(err, recipe.ErrInvalidRecipe):
		var verrs validator.ValidationErrors
		message := "invalid recipe"
		if errors.As(err, &verrs) {
			message = formatValidationErrors(verrs)
		}
		env.Logger.InfoContext(ctx, "Invalid recipe", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UnprocessibleEntity, message, requestID)
	case errors.Is(err, store.ErrNotFound):
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
	case errors.Is(err, store.ErrDuplicateID), errors.Is(err, store.ErrDuplicateSlug):
		env.Logger.InfoContext(ctx, "Duplicate recipe", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.DuplicateRecipe, err.Error(), requestID)
	case errors.Is(err, store.ErrVersionMismatch):
		env.Logger.InfoContext(ctx, "Stale write rejected", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.VersionMismatch, "recipes have changed, reload and retry", requestID)
	default:
		env.Logger.ErrorContext(ctx, "Failed to write recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
	}
}

func formatValidationErrors(verrs validator.ValidationErrors) string {
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace()+" failed "+fe.Tag())
	}
	return "invalid recipe: " + strings.Join(fields, ", ")
}

// notify tells the site builder about a change and returns the collection
// version after it.
func notify(r *http.Request, action buildhook.Action, changed recipe.Recipe) string {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	version := env.Store.Version()

	err := env.Hook.Notify(ctx, buildhook.Event{
		Action:  action,
		ID:      changed.ID,
		Slug:    changed.Slug,
		Version: version,
		At:      time.Now().UTC(),
	})
	if err != nil {
		env.Logger.WarnContext(ctx, "Failed to notify rebuild hook", slog.Any("error", err))
	}
	return version
}

// imageKeys lists the uploaded image keys r references, hero and step images.
func imageKeys(r recipe.Recipe) []string {
	images := slices.Clone(r.Image)
	for _, step := range r.Steps {
		images = append(images, step.Image...)
	}
	keys := make([]string, 0, len(images))
	for _, img := range images {
		if img.ID != "" {
			keys = append(keys, img.ID)
		}
	}
	return keys
}

// removeImages deletes the uploaded images of a removed recipe that no
// remaining recipe references. Failures are logged; the recipe is already
// gone.
func removeImages(r *http.Request, removed recipe.Recipe) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	if env.FileStore == nil {
		return
	}

	inUse := make(map[string]struct{})
	for _, other := range env.Store.All() {
		for _, key := range imageKeys(other) {
			inUse[key] = struct{}{}
		}
	}
	for _, key := range imageKeys(removed) {
		if _, ok := inUse[key]; ok {
			env.Logger.DebugContext(ctx, "Keeping shared image", slog.String("key", key))
			continue
		}
		inUse[key] = struct{}{}
		if err := env.FileStore.DeleteKey(ctx, key); err != nil {
			env.Logger.WarnContext(ctx, "Failed to delete image",
				slog.String("key", key), slog.Any("error", err))
		}
	}
}
