package identity

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tennis-space/backend/internal/domain/apperr"
	"tennis-space/backend/internal/domain/club"
	"tennis-space/backend/internal/domain/user"
	"tennis-space/backend/internal/logger"
	"tennis-space/backend/internal/metrics"
	"tennis-space/backend/internal/session"
)

type ClubFinder interface {
	GetClubByID(ctx context.Context, id string) (*club.TennisClub, error)
}

// Service implements the account operations. Each call takes the session
// store it reads from or writes to; the Service itself holds no session.
type Service struct {
	provider Provider
	users    user.Repository
	clubs    ClubFinder
}

func NewService(provider Provider, users user.Repository, clubs ClubFinder) *Service {
	return &Service{provider: provider, users: users, clubs: clubs}
}

// Login signs in with email and password and returns the stored profile, or
// one built from the provider account when none is stored yet.
func (s *Service) Login(ctx context.Context, st *session.Store, email, password string) (*user.User, error) {
	sess, err := s.provider.SignIn(ctx, strings.TrimSpace(email), password)
	metrics.RecordAuth("login", err)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrAuthentication, err)
	}

	u := s.profile(ctx, sess)
	st.Set(sess)
	logger.FromContext(ctx).Info("user logged in", zap.String("uid", sess.UID))
	return u, nil
}

// Register creates the account, sets its display name and stores a fresh
// profile. A malformed email is rejected before the provider is called.
func (s *Service) Register(ctx context.Context, st *session.Store, email, password, name string) (*user.User, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, apperr.New(apperr.ErrValidation, "invalid email address")
	}

	sess, err := s.provider.CreateAccount(ctx, email, password)
	if err == nil {
		err = s.provider.UpdateDisplayName(ctx, sess.UID, name)
	}
	metrics.RecordAuth("register", err)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrRegistration, err)
	}
	sess.DisplayName = name

	u := user.User{
		ID:         sess.UID,
		Email:      sess.Email,
		Name:       name,
		IsLoggedIn: true,
		OwnClubs:   []string{},
	}
	if u.Email == "" {
		u.Email = email
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	st.Set(sess)
	logger.FromContext(ctx).Info("user registered", zap.String("uid", u.ID))
	return &u, nil
}

// CurrentUser returns nil without error when nobody is signed in.
func (s *Service) CurrentUser(ctx context.Context, st *session.Store) (*user.User, error) {
	sess, ok := st.Current()
	if !ok {
		return nil, nil
	}
	return s.profile(ctx, sess), nil
}

// Logout clears the session and revokes the provider tokens of the user that
// was signed in. Logging out twice is fine.
func (s *Service) Logout(ctx context.Context, st *session.Store) error {
	sess, ok := st.Current()
	st.Clear()
	if !ok {
		return nil
	}
	err := s.provider.SignOut(ctx, sess.UID)
	metrics.RecordAuth("logout", err)
	if err != nil {
		return apperr.Wrap(apperr.ErrAuthentication, err)
	}
	return nil
}

// JoinClub adds clubID to the signed-in user's ownClubs. userID may be empty
// for the current user; naming anyone else is forbidden.
func (s *Service) JoinClub(ctx context.Context, st *session.Store, userID, clubID string) (*user.User, error) {
	sess, ok := st.Current()
	if !ok {
		return nil, apperr.New(apperr.ErrNotAuthenticated, "no user is signed in")
	}
	if userID == "" {
		userID = sess.UID
	}
	if userID != sess.UID {
		return nil, apperr.New(apperr.ErrForbidden, "users can only join clubs for themselves")
	}
	if _, err := s.clubs.GetClubByID(ctx, clubID); err != nil {
		return nil, err
	}

	stored, err := s.users.Get(ctx, userID)
	switch {
	case apperr.IsErrNotFound(err):
		u := fromSession(sess).WithClub(clubID)
		if err := s.users.Save(ctx, u); err != nil {
			return nil, err
		}
		return &u, nil
	case err != nil:
		return nil, err
	}

	u := merge(*stored, sess)
	if u.HasClub(clubID) {
		return &u, nil
	}
	u = u.WithClub(clubID)
	if err := s.users.SetOwnClubs(ctx, userID, u.OwnClubs); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("user joined club", zap.String("uid", userID), zap.String("clubId", clubID))
	return &u, nil
}

// UpdateUser stores u as the complete profile.
func (s *Service) UpdateUser(ctx context.Context, u user.User) (*user.User, error) {
	if u.OwnClubs == nil {
		u.OwnClubs = []string{}
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	out := u.Clone()
	return &out, nil
}

func (s *Service) IsLoggedIn(st *session.Store) bool {
	return st.Active()
}

// Authenticate resolves a bearer token into a session.
func (s *Service) Authenticate(ctx context.Context, token string) (session.Session, error) {
	sess, err := s.provider.Verify(ctx, token)
	if err != nil {
		return session.Session{}, apperr.Wrap(apperr.ErrNotAuthenticated, err)
	}
	return sess, nil
}

// profile falls back to the provider account when the stored profile is
// missing or unreadable.
func (s *Service) profile(ctx context.Context, sess session.Session) *user.User {
	stored, err := s.users.Get(ctx, sess.UID)
	if err != nil {
		if !apperr.IsErrNotFound(err) {
			logger.FromContext(ctx).Warn("stored profile unreadable, using account data",
				zap.String("uid", sess.UID), zap.Error(err))
		}
		u := fromSession(sess)
		return &u
	}
	u := merge(*stored, sess)
	return &u
}

func fromSession(sess session.Session) user.User {
	name := sess.DisplayName
	if name == "" {
		name = user.DefaultName
	}
	return user.User{
		ID:         sess.UID,
		Email:      sess.Email,
		Name:       name,
		IsLoggedIn: true,
		OwnClubs:   []string{},
	}
}

// merge lays the stored profile over the provider account.
func merge(stored user.User, sess session.Session) user.User {
	out := fromSession(sess)
	if stored.Email != "" {
		out.Email = stored.Email
	}
	if stored.Name != "" {
		out.Name = stored.Name
	}
	out.PhoneNumber = stored.PhoneNumber
	out.ProfileImageURL = stored.ProfileImageURL
	if stored.OwnClubs != nil {
		out.OwnClubs = stored.OwnClubs
	}
	return out
}
