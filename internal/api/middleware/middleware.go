// Package middleware contains middleware functions for the API
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/cors"

	apiError "github.com/matt-dz/silviakaka/internal/api/error"
	"github.com/matt-dz/silviakaka/internal/api/requestid"
	"github.com/matt-dz/silviakaka/internal/api/token"
	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/log"
)

const RequestIDHeader = "X-Request-Id"

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		Level:         slog.LevelInfo,
		Schema:        httplog.SchemaECS,
		RecoverPanics: true,
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			if id := requestid.ExtractRequestID(r.Context()); id != "" {
				return []slog.Attr{slog.String("log_id", id)}
			}
			return []slog.Attr{slog.String("log_id", "N/A")}
		},
	})
}

// AddRequestID adds a request ID to the request context and the response.
// A well-formed id sent by the caller is kept so build logs and API logs can
// be correlated.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := requestid.FromHeader(r.Header.Get(RequestIDHeader))
		w.Header().Set(RequestIDHeader, requestID)
		r = r.WithContext(log.AppendCtx(r.Context(), slog.String("log_id", requestID)))
		r = r.WithContext(requestid.InjectRequestID(r.Context(), requestID))
		next.ServeHTTP(w, r)
	})
}

// Cors allows the site origin in production and every origin otherwise.
func Cors(hostOrigin string, isProd bool) func(http.Handler) http.Handler {
	origins := []string{"*"}
	if isProd {
		origins = []string{hostOrigin}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", "If-Match"},
		ExposedHeaders: []string{"ETag", RequestIDHeader},
		MaxAge:         86400,
	}).Handler
}

// Authorize admits requests carrying the static admin token or a valid admin
// JWT as a bearer token.
func Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env := env.EnvFromCtx(r.Context())
		requestID := requestid.ExtractRequestID(r.Context())

		if !env.Auth.Enabled() {
			env.Logger.WarnContext(r.Context(), "admin request while no credentials are configured")
			_ = apiError.EncodeError(w, apiError.AdminDisabled, ErrAdminDisabled.Error(), requestID)
			return
		}

		raw, err := token.BearerToken(r)
		if err != nil {
			env.Logger.DebugContext(r.Context(), "missing bearer token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, ErrInvalidToken.Error(), requestID)
			return
		}

		if token.MatchesStatic(raw, env.Auth) {
			r = r.WithContext(log.AppendCtx(r.Context(), slog.String("admin", "token")))
			next.ServeHTTP(w, r.WithContext(token.SubjectWithCtx(r.Context(), "token")))
			return
		}

		subject, err := token.ValidateAccessToken(raw, env.Auth)
		if errors.Is(err, jwt.ErrTokenExpired) {
			env.Logger.InfoContext(r.Context(), "access token expired")
			_ = apiError.EncodeError(w, apiError.ExpiredAccessToken, "access token expired", requestID)
			return
		} else if err != nil {
			env.Logger.WarnContext(r.Context(), "invalid access token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, ErrInvalidToken.Error(), requestID)
			return
		}

		r = r.WithContext(log.AppendCtx(r.Context(), slog.String("admin", subject)))
		next.ServeHTTP(w, r.WithContext(token.SubjectWithCtx(r.Context(), subject)))
	})
}
