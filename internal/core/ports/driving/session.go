package driving

import "context"

type sessionCtxKey struct{}

// WithSession scopes the account session to token for calls made with the
// returned context. Multi-client adapters use this so that one client's
// login does not change another's identity. An empty token means the caller
// has no session yet.
func WithSession(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, token)
}

// SessionFromContext returns the request-scoped session token. ok is false
// when the context carries no scope, in which case the single local session
// applies.
func SessionFromContext(ctx context.Context) (token string, ok bool) {
	token, ok = ctx.Value(sessionCtxKey{}).(string)
	return token, ok
}
