package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateAndValidate(t *testing.T) {
	raw, err := GenerateJWT(JWTParams{Role: RoleAdmin, Subject: "mormor"}, secret, DefaultKID)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	sub, err := ValidateAdmin(raw, DefaultKID, secret)
	if err != nil {
		t.Fatalf("ValidateAdmin() error = %v", err)
	}
	if sub != "mormor" {
		t.Errorf("subject = %q, want %q", sub, "mormor")
	}
}

func TestValidateAdmin_Rejects(t *testing.T) {
	viewer, err := GenerateJWT(JWTParams{Role: "viewer", Subject: "gäst"}, secret, DefaultKID)
	if err != nil {
		t.Fatal(err)
	}
	admin, err := GenerateJWT(JWTParams{Role: RoleAdmin, Subject: "mormor"}, secret, DefaultKID)
	if err != nil {
		t.Fatal(err)
	}
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "mormor",
		"role": RoleAdmin,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	expired.Header["kid"] = DefaultKID
	expiredRaw, err := expired.SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		raw     string
		version string
		secret  []byte
		want    error
	}{
		{name: "wrong role", raw: viewer, version: DefaultKID, secret: secret, want: ErrNotAdmin},
		{name: "expired", raw: expiredRaw, version: DefaultKID, secret: secret, want: jwt.ErrTokenExpired},
		{name: "wrong secret", raw: admin, version: DefaultKID, secret: []byte("another-secret-another-secret-xx"), want: jwt.ErrTokenSignatureInvalid},
		{name: "rotated version", raw: admin, version: "2", secret: secret},
		{name: "garbage", raw: "not.a.jwt", version: DefaultKID, secret: secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAdmin(tt.raw, tt.version, tt.secret)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
