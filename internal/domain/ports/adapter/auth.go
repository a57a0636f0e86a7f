package adapter

import "context"

// Identity is the authenticated principal established from a bearer token.
type Identity struct {
	UserID string
	Email  string
	Admin  bool
}

// TokenVerifier validates a bearer ID token against the auth provider and
// returns the identity it asserts.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}
