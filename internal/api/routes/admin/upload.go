package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	apiError "github.com/matt-dz/silviakaka/internal/api/error"
	"github.com/matt-dz/silviakaka/internal/api/requestid"
	"github.com/matt-dz/silviakaka/internal/api/response"
	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/file"
	"github.com/matt-dz/silviakaka/internal/filestore"
	"github.com/matt-dz/silviakaka/internal/form"
	"github.com/matt-dz/silviakaka/internal/recipe"
)

// multipartOverhead leaves room for the form fields around the file.
const multipartOverhead = 1 << 20

// HandleUploadImage godoc
//
//	@Summary		Upload a recipe or step image.
//	@Description	Accepts JPEG, PNG and GIF. Images wider than the configured
//	@Description	maximum are downscaled. The response is the image descriptor
//	@Description	to store in a recipe's image list.
//	@Tags			Admin
//	@Accept			multipart/form-data
//	@Produce		json
//
//	@Param			file	formData	file	true	"Image"
//	@Param			kind	formData	string	false	"recipes (default) or steps"
//	@Param			name	formData	string	false	"Name used in the stored file name"
//
//	@Success		201		{object}	UploadResponse
//	@Failure		400		{object}	apiError.Error	"Bad Request"
//	@Failure		422		{object}	apiError.Error	"Unsupported image"
//	@Security		BearerAuth
//	@Router			/api/admin/upload [POST]
func HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	if env.FileStore == nil {
		env.Logger.ErrorContext(ctx, "Upload without a configured file store")
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Read form
	env.Logger.DebugContext(ctx, "Reading multipart form")
	r.Body = http.MaxBytesReader(w, r.Body, env.Upload.MaxBytes+multipartOverhead)
	img, err := form.FormImage(r, "file", env.Upload.MaxBytes, env.Upload.MaxWidth)
	switch {
	case errors.Is(err, form.ErrNoImageUploaded):
		_ = apiError.EncodeError(w, apiError.BadRequest, "no image uploaded", requestID)
		return
	case errors.Is(err, form.ErrUnsupportedMimeType):
		env.Logger.InfoContext(ctx, "Unsupported image type", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidImage, "unsupported image type", requestID)
		return
	case errors.Is(err, form.ErrImageTooLarge):
		_ = apiError.EncodeError(w, apiError.BadRequest, "image too large", requestID)
		return
	case err != nil:
		env.Logger.InfoContext(ctx, "Failed to read image", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidImage, "could not read image", requestID)
		return
	}

	request := UploadRequest{
		Kind: strings.TrimSpace(r.FormValue("kind")),
		Name: strings.TrimSpace(r.FormValue("name")),
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.InfoContext(ctx, "Failed to validate upload", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid kind or name", requestID)
		return
	}
	kind := filestore.RecipeImage
	if request.Kind != "" {
		kind = filestore.Kind(request.Kind)
	}
	name := request.Name
	if name == "" && r.MultipartForm != nil {
		if headers := r.MultipartForm.File["file"]; len(headers) > 0 {
			name, _ = file.SplitName(headers[0].Filename)
		}
	}

	// Store image
	env.Logger.DebugContext(ctx, "Writing image", slog.String("kind", string(kind)), slog.Int("bytes", len(img.Data)))
	key, _, err := env.FileStore.WriteImage(ctx, kind, name, img.Suffix, img.MimeType, img.Data)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write image", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	response.WriteJSON(w, r, http.StatusCreated, UploadResponse(recipe.Image{
		ID:        key,
		URL:       env.FileStore.FileURL(key),
		Extension: strings.TrimPrefix(img.Suffix, "."),
		Width:     img.Width,
		Height:    img.Height,
		Alt:       request.Name,
	}))
}
