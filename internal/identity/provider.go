// Package identity signs users in and out and keeps their stored profile in
// step with the identity provider.
package identity

import (
	"context"

	"tennis-space/backend/internal/session"
)

// Provider is the account backend. Implementations return the provider's own
// error messages; the Service tags them.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (session.Session, error)
	// CreateAccount registers email/password and returns a signed-in session.
	CreateAccount(ctx context.Context, email, password string) (session.Session, error)
	UpdateDisplayName(ctx context.Context, uid, name string) error
	// Verify resolves a bearer token issued by SignIn or CreateAccount.
	Verify(ctx context.Context, token string) (session.Session, error)
	// SignOut invalidates every token issued to uid so far.
	SignOut(ctx context.Context, uid string) error
}
