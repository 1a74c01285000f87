package middleware

import "errors"

var (
	ErrAdminDisabled = errors.New("admin api is disabled")
	ErrInvalidToken  = errors.New("invalid access token")
)
