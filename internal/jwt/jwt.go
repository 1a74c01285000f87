// Package jwt provides functions for generating and validating admin JWTs
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTDuration = time.Hour
	DefaultKID  = "1"
	RoleAdmin   = "admin"
)

var ErrNotAdmin = errors.New("token does not carry the admin role")

type JWTParams struct {
	Role    string
	Subject string
}

func GenerateJWT(params JWTParams, secret []byte, version string) (string, error) {
	// Build token
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  params.Subject,
		"role": params.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(JWTDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = version

	// Sign token
	signedKey, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signedKey, nil
}

func ValidateJWT(rawToken, version string, secret []byte) (*jwt.Token, error) {
	parserFunc := func(token *jwt.Token) (any, error) {
		kidVal, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("missing/invalid kid value")
		}

		if kidVal != version {
			return nil, fmt.Errorf("verifying KID value, value=%q", kidVal)
		}

		return secret, nil
	}

	// Parse the token
	token, err := jwt.Parse(rawToken, parserFunc, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	return token, nil
}

// ValidateAdmin validates rawToken and returns its subject when the token
// carries the admin role.
func ValidateAdmin(rawToken, version string, secret []byte) (string, error) {
	token, err := ValidateJWT(rawToken, version, secret)
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNotAdmin
	}
	if role, _ := claims["role"].(string); role != RoleAdmin {
		return "", ErrNotAdmin
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("reading subject: %w", err)
	}
	return sub, nil
}
