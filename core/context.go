package core

import "context"

// Context keys for run options
type contextKey string

const suppressProgressKey contextKey = "suppressProgress"

// WithSuppressProgress marks the context so no progress lines are printed,
// even when verbose output is configured.
func WithSuppressProgress(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressProgressKey, true)
}

// shouldSuppressProgress returns whether progress should be suppressed from context
func shouldSuppressProgress(ctx context.Context) bool {
	val := ctx.Value(suppressProgressKey)
	if val == nil {
		return false // default: honor --verbose
	}
	suppress, ok := val.(bool)
	return ok && suppress
}
