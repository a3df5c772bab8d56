package api

import "context"

// Doer is the request surface the domain services depend on, so tests can
// stand in a fake without spinning up a server.
type Doer interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

var _ Doer = (*Client)(nil)

// TokenSourceFunc adapts a plain function to a TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

type tokenCtxKey struct{}

// WithToken pins the bearer token for requests issued with this context,
// overriding the client's TokenSource. The session manager uses it to probe
// a token it has not committed to yet. An empty token means "send nothing".
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

func tokenFromCtx(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(tokenCtxKey{}).(string)
	return v, ok
}
