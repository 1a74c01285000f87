package error

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEncodeError(t *testing.T) {
	tests := []struct {
		name       string
		code       ErrorCode
		wantStatus int
	}{
		{name: "not found", code: RecipeNotFound, wantStatus: http.StatusNotFound},
		{name: "conflict", code: DuplicateRecipe, wantStatus: http.StatusConflict},
		{name: "precondition", code: VersionMismatch, wantStatus: http.StatusPreconditionFailed},
		{name: "rate limited", code: TooManyRequests, wantStatus: http.StatusTooManyRequests},
		{name: "unknown falls back to 500", code: UnknownError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := EncodeError(rec, tt.code, "nope", "01J"); err != nil {
				t.Fatalf("EncodeError() error = %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var body Error
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Code != tt.code || body.Status != tt.wantStatus || body.ErrorID != "01J" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestEncodeInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = EncodeInternalError(rec, "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
}
