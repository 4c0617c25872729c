package runid

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// runKey is an unexported type for context keys within this package.
type runKey struct{}

// New returns a fresh run identifier. ULIDs sort by creation time, which
// keeps log archives and pushed metrics groupable by run without a join.
func New() string {
	return ulid.Make().String()
}

// FromContext fetches the run ID from the context if present.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(runKey{}).(string); ok {
		return val
	}
	return ""
}

// WithContext sets the run ID onto the context.
func WithContext(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runKey{}, id)
}

// Ensure guarantees a run ID on the context, generating one when missing.
// A pipeline invocation that spans several stages seeds the context once so
// every stage reports under the same ID.
func Ensure(ctx context.Context) (context.Context, string) {
	id := FromContext(ctx)
	if id == "" {
		id = New()
	}
	return WithContext(ctx, id), id
}
