package auth

import "context"

// Identity describes the authenticated caller of a request. The zero value is
// an anonymous request; the identity middleware attaches a populated one only
// after a token verifies.
type Identity struct {
	UserID string
	Email  string
}

type identityContextKey struct{}

// WithIdentity returns a context carrying the caller's identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the caller's identity. The second return is
// false for anonymous requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
