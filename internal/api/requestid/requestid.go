// Package requestid carries the per-request ULID that log lines and error
// bodies refer to.
package requestid

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type requestIDKeyType struct{}

var requestIDKey requestIDKeyType

// New returns a fresh, time-ordered request id.
func New() string {
	return ulid.Make().String()
}

// FromHeader returns the id a caller supplied when it is a well-formed ULID,
// and a fresh one otherwise.
func FromHeader(value string) string {
	if id, err := ulid.ParseStrict(value); err == nil {
		return id.String()
	}
	return New()
}

func InjectRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ExtractRequestID returns the request id in ctx, or "" when there is none.
func ExtractRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
