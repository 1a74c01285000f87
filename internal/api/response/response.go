// Package response writes JSON response bodies.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	apiError "github.com/matt-dz/silviakaka/internal/api/error"
	"github.com/matt-dz/silviakaka/internal/api/requestid"
	"github.com/matt-dz/silviakaka/internal/env"
)

// ETagHeader carries the collection version.
const ETagHeader = "ETag"

// WriteJSON encodes body with the given status. Encoding failures are
// reported as internal errors.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	env.Logger.DebugContext(ctx, "Writing response")
	resp, err := json.Marshal(body)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.ExtractRequestID(ctx))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}

// ETag quotes a collection version for use as an entity tag.
func ETag(version string) string {
	return `"` + version + `"`
}

// NotModified sets the ETag header and reports whether the client already
// holds this version. When it does, a 304 has been written.
func NotModified(w http.ResponseWriter, r *http.Request, version string) bool {
	if version == "" {
		return false
	}
	tag := ETag(version)
	w.Header().Set(ETagHeader, tag)
	if match := r.Header.Get("If-None-Match"); match == tag || match == "*" {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// IfMatch returns the unquoted version of an If-Match header, or "" when
// any version is acceptable. The collection always has a current version,
// so "*" matches it. Weak tags are returned as given and never equal a
// version, since If-Match compares strongly.
func IfMatch(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("If-Match"))
	if v == "*" {
		return ""
	}
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
