package useragent

import "context"

type contextKey struct{}

// WithContext stores ua in ctx.
func WithContext(ctx context.Context, ua UserAgent) context.Context {
	return context.WithValue(ctx, contextKey{}, ua)
}

// FromContext returns the user agent stored by WithContext or Middleware.
func FromContext(ctx context.Context) (UserAgent, bool) {
	if ctx == nil {
		return UserAgent{}, false
	}
	ua, ok := ctx.Value(contextKey{}).(UserAgent)
	return ua, ok
}
