// Package token contains utilities for admin bearer tokens.
package token

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/jwt"
)

var ErrMissingBearer = errors.New("missing bearer token")

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, value, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingBearer
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrMissingBearer
	}
	return value, nil
}

// MatchesStatic compares raw with the configured static token in constant
// time. An empty configured token never matches.
func MatchesStatic(raw string, auth env.Auth) bool {
	if auth.Token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(raw), []byte(auth.Token)) == 1
}

func CreateAccessToken(subject string, auth env.Auth) (string, error) {
	if len(auth.Secret) == 0 {
		return "", errors.New("app secret not configured")
	}
	token, err := jwt.GenerateJWT(jwt.JWTParams{Role: jwt.RoleAdmin, Subject: subject}, auth.Secret, version(auth))
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return token, nil
}

// ValidateAccessToken returns the subject of a valid admin JWT.
func ValidateAccessToken(raw string, auth env.Auth) (string, error) {
	if len(auth.Secret) == 0 {
		return "", errors.New("app secret not configured")
	}
	return jwt.ValidateAdmin(raw, version(auth), auth.Secret)
}

func version(auth env.Auth) string {
	if auth.SecretVersion == "" {
		return jwt.DefaultKID
	}
	return auth.SecretVersion
}

type subjectKeyType struct{}

var subjectKey subjectKeyType

func SubjectWithCtx(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromCtx returns the authenticated admin, or "" when none.
func SubjectFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(subjectKey).(string); ok {
		return v
	}
	return ""
}
