package observability

import (
	"context"

	"github.com/google/uuid"
)

// TraceHeader carries the request trace id in and out of the service.
const TraceHeader = "X-Trace-ID"

type traceKey struct{}

// NewTraceID returns a fresh random trace id.
func NewTraceID() string { return uuid.NewString() }

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// TraceID returns the id stored by WithTraceID, or "".
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}
