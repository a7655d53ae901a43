package sdk

import (
	"context"

	"github.com/google/uuid"
)

type contextKey int

const correlationIDKey contextKey = iota

// NewRequestContext derives a per-call context carrying a fresh correlation
// id. Create one per logical call; the id is sent to the service as the
// X-Correlation-Id header and ties client-side logs to server-side ones.
//
// A call issued with a plain context gets a correlation id generated for it
// automatically, so this is only needed when the caller wants to know the id
// up front.
func NewRequestContext(parent context.Context) context.Context {
	return context.WithValue(parent, correlationIDKey, uuid.NewString())
}

// CorrelationID returns the correlation id carried by ctx, or "" when there
// is none.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}
