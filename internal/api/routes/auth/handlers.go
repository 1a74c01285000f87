// Package auth contains handlers for the auth endpoints
package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	apiError "github.com/matt-dz/silviakaka/internal/api/error"
	"github.com/matt-dz/silviakaka/internal/api/requestid"
	"github.com/matt-dz/silviakaka/internal/api/response"
	"github.com/matt-dz/silviakaka/internal/api/token"
	"github.com/matt-dz/silviakaka/internal/argon2id"
	"github.com/matt-dz/silviakaka/internal/env"
	mJson "github.com/matt-dz/silviakaka/internal/json"
	"github.com/matt-dz/silviakaka/internal/jwt"
)

const invalidCredentials = "username or password is incorrect"

// HandleLogin godoc
//
//	@Summary		Admin login.
//	@Description	Exchanges the admin username and password for a bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//
//	@Param			request	body		LoginRequest	true	"Login Request"
//
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	apiError.Error	"Bad Request"
//	@Failure		401		{object}	apiError.Error	"Unauthorized"
//	@Failure		404		{object}	apiError.Error	"Admin login disabled"
//	@Failure		429		{object}	apiError.Error	"Too Many Requests"
//	@Router			/api/auth/login [POST]
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := requestid.ExtractRequestID(ctx)

	if env.Auth.Username == "" || env.Auth.PasswordHash == "" {
		env.Logger.WarnContext(ctx, "Login attempt while password login is disabled")
		_ = apiError.EncodeError(w, apiError.AdminDisabled, "password login is disabled", requestID)
		return
	}

	// Decode JSON
	var request LoginRequest
	env.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	if err := mJson.Decode(r.Body, &request); err != nil {
		env.Logger.InfoContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.InfoContext(ctx, "Failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	// Compare credentials. Both checks always run.
	env.Logger.DebugContext(ctx, "Comparing credentials")
	userOK := subtle.ConstantTimeCompare([]byte(request.Username), []byte(env.Auth.Username)) == 1
	passOK, err := argon2id.Verify(request.Password, env.Auth.PasswordHash)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to verify password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !userOK || !passOK {
		env.Logger.WarnContext(ctx, "Invalid admin credentials", slog.String("username", request.Username))
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, invalidCredentials, requestID)
		return
	}

	// Create access token
	env.Logger.DebugContext(ctx, "Generating access token")
	accessToken, err := token.CreateAccessToken(env.Auth.Username, env.Auth)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to create access token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.InfoContext(ctx, "Admin logged in", slog.String("username", request.Username))
	w.Header().Set("Cache-Control", "no-store")
	response.WriteJSON(w, r, http.StatusOK, LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(jwt.JWTDuration.Seconds()),
	})
}

// HandleVerifySession godoc
//
//	@Summary		Verify an admin session
//	@Description	Returns the subject of the bearer token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Failure		401	{object}	apiError.Error	"Expired or invalid access token"
//	@Security		BearerAuth
//	@Router			/api/auth/session [get]
func HandleVerifySession(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, r, http.StatusOK, SessionResponse{Subject: token.SubjectFromCtx(r.Context())})
}
