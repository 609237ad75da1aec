package ctxutil

import (
	"context"
)

type ctxKey string

const lookupIDKey ctxKey = "lookup_id"

// WithLookupID stores the lookup request ID in the context.
func WithLookupID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, lookupIDKey, id)
}

// LookupIDFromCtx extracts the lookup request ID from the context.
// Returns an empty string if absent.
func LookupIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(lookupIDKey).(string)
	return id
}
