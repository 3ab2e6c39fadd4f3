package fitlifeapi

import "context"

type tokenContextKey struct{}

// ContextWithToken attaches a per-request bearer token, overriding the
// client-wide one for calls made with the returned context.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok
}
