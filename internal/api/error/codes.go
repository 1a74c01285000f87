package error

import "net/http"

type ErrorCode string

const (
	UnknownError        ErrorCode = "unknown_error"
	InternalServerError ErrorCode = "internal_server_error"
	BadRequest          ErrorCode = "bad_request"
	UnprocessibleEntity ErrorCode = "unprocessible_entity"
	InvalidCredentials  ErrorCode = "invalid_credentials"
	InvalidAccessToken  ErrorCode = "invalid_access_token"
	ExpiredAccessToken  ErrorCode = "expired_access_token"
	TooManyRequests     ErrorCode = "too_many_requests"
	RecipeNotFound      ErrorCode = "recipe_not_found"
	CategoryNotFound    ErrorCode = "category_not_found"
	PageNotFound        ErrorCode = "page_not_found"
	DuplicateRecipe     ErrorCode = "duplicate_recipe"
	MalformedFilter     ErrorCode = "malformed_filter"
	VersionMismatch     ErrorCode = "version_mismatch"
	InvalidImage        ErrorCode = "invalid_image"
	AdminDisabled       ErrorCode = "admin_disabled"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:        0, // No error code - unknown
	InternalServerError: http.StatusInternalServerError,
	BadRequest:          http.StatusBadRequest,
	UnprocessibleEntity: http.StatusUnprocessableEntity,
	InvalidCredentials:  http.StatusUnauthorized,
	InvalidAccessToken:  http.StatusUnauthorized,
	ExpiredAccessToken:  http.StatusUnauthorized,
	TooManyRequests:     http.StatusTooManyRequests,
	RecipeNotFound:      http.StatusNotFound,
	CategoryNotFound:    http.StatusNotFound,
	PageNotFound:        http.StatusNotFound,
	DuplicateRecipe:     http.StatusConflict,
	MalformedFilter:     http.StatusBadRequest,
	VersionMismatch:     http.StatusPreconditionFailed,
	InvalidImage:        http.StatusUnprocessableEntity,
	AdminDisabled:       http.StatusNotFound,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
