// Package error contains the JSON error envelope returned by the API.
package error

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is the body of every non-2xx API response.
type Error struct {
	Status  int       `json:"status"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	ErrorID string    `json:"error_id,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// EncodeError writes an error response for code. The status is taken from
// the code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	status := code.StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Error{
		Status:  status,
		Code:    code,
		Message: message,
		ErrorID: errorID,
	}); err != nil {
		return fmt.Errorf("encoding error: %w", err)
	}
	return nil
}

// EncodeInternalError writes a generic 500 response.
func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}
