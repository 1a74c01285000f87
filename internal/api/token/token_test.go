package token

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/matt-dz/silviakaka/internal/env"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc", want: "abc"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "missing", header: "", wantErr: true},
		{name: "basic", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "empty token", header: "Bearer  ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := BearerToken(r)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingBearer) {
					t.Fatalf("BearerToken() error = %v, want ErrMissingBearer", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("BearerToken() = %q, %v, want %q", got, err, tt.want)
			}
		})
	}
}

func TestMatchesStatic(t *testing.T) {
	auth := env.Auth{Token: "a-static-token-that-is-long-enough"}
	if !MatchesStatic("a-static-token-that-is-long-enough", auth) {
		t.Error("expected match")
	}
	if MatchesStatic("a-static-token", auth) {
		t.Error("prefix should not match")
	}
	if MatchesStatic("", env.Auth{}) {
		t.Error("empty token should never match")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	auth := env.Auth{Secret: []byte("0123456789abcdef0123456789abcdef"), SecretVersion: "3"}

	raw, err := CreateAccessToken("mormor", auth)
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}
	sub, err := ValidateAccessToken(raw, auth)
	if err != nil || sub != "mormor" {
		t.Errorf("ValidateAccessToken() = %q, %v", sub, err)
	}

	rotated := auth
	rotated.SecretVersion = "4"
	if _, err := ValidateAccessToken(raw, rotated); err == nil {
		t.Error("token signed with an old version should be rejected")
	}
	if _, err := CreateAccessToken("mormor", env.Auth{}); err == nil {
		t.Error("expected error without secret")
	}
}

func TestSubjectCtx(t *testing.T) {
	ctx := context.Background()
	if SubjectFromCtx(ctx) != "" {
		t.Error("expected empty subject")
	}
	if got := SubjectFromCtx(SubjectWithCtx(ctx, "mormor")); got != "mormor" {
		t.Errorf("SubjectFromCtx() = %q", got)
	}
}
