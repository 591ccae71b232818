package identity

import (
	"context"
	"errors"
	"time"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"tennis-space/backend/internal/session"
)

// FirebaseProvider uses the Admin SDK for account management and token checks
// and the Identity Toolkit REST API for password sign-in, which the Admin SDK
// does not offer.
type FirebaseProvider struct {
	auth *auth.Client
	rp   *identitytoolkit.RelyingpartyService
}

func NewFirebaseProvider(ctx context.Context, authClient *auth.Client, apiKey string) (*FirebaseProvider, error) {
	if apiKey == "" {
		return nil, errors.New("missing FIREBASE_API_KEY")
	}
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &FirebaseProvider{auth: authClient, rp: svc.Relyingparty}, nil
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	resp, err := p.rp.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return session.Session{}, providerError(err)
	}
	return session.Session{
		UID:         resp.LocalId,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		Token:       resp.IdToken,
		ExpiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

func (p *FirebaseProvider) CreateAccount(ctx context.Context, email, password string) (session.Session, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	if _, err := p.auth.CreateUser(ctx, params); err != nil {
		return session.Session{}, err
	}
	return p.SignIn(ctx, email, password)
}

func (p *FirebaseProvider) UpdateDisplayName(ctx context.Context, uid, name string) error {
	_, err := p.auth.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).DisplayName(name))
	return err
}

func (p *FirebaseProvider) Verify(ctx context.Context, token string) (session.Session, error) {
	tok, err := p.auth.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		return session.Session{}, err
	}
	s := session.Session{
		UID:       tok.UID,
		Token:     token,
		ExpiresAt: time.Unix(tok.Expires, 0),
	}
	if v, ok := tok.Claims["email"].(string); ok {
		s.Email = v
	}
	if v, ok := tok.Claims["name"].(string); ok {
		s.DisplayName = v
	}
	return s, nil
}

func (p *FirebaseProvider) SignOut(ctx context.Context, uid string) error {
	return p.auth.RevokeRefreshTokens(ctx, uid)
}

// providerError keeps the REST error code ("INVALID_PASSWORD", ...) as the
// message instead of the full googleapi rendering.
func providerError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return errors.New(gerr.Message)
	}
	return err
}
