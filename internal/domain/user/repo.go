package user

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tennis-space/backend/internal/domain/apperr"
)

const collection = "users"

// Repository persists user profiles under users/{uid}.
type Repository interface {
	Get(ctx context.Context, uid string) (*User, error)
	Save(ctx context.Context, u User) error
	SetOwnClubs(ctx context.Context, uid string, clubIDs []string) error
}

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Get(ctx context.Context, uid string) (*User, error) {
	doc, err := r.fs.Collection(collection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperr.Newf(apperr.ErrNotFound, "user %s not found", uid)
		}
		return nil, apperr.Persistence(err)
	}
	var u User
	if err := doc.DataTo(&u); err != nil {
		return nil, apperr.Wrap(apperr.ErrDecode, fmt.Errorf("users/%s: %w", uid, err))
	}
	out, err := decodeUser(uid, u)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Save overwrites the whole profile document.
func (r *Repo) Save(ctx context.Context, u User) error {
	if u.ID == "" {
		return apperr.New(apperr.ErrValidation, "user id is required")
	}
	u.OwnClubs = dedupeClubs(u.OwnClubs)
	_, err := r.fs.Collection(collection).Doc(u.ID).Set(ctx, u)
	return apperr.Persistence(err)
}

// SetOwnClubs updates only the ownClubs field; the profile must exist.
func (r *Repo) SetOwnClubs(ctx context.Context, uid string, clubIDs []string) error {
	_, err := r.fs.Collection(collection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "ownClubs", Value: dedupeClubs(clubIDs)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return apperr.Newf(apperr.ErrNotFound, "user %s not found", uid)
		}
		return apperr.Persistence(err)
	}
	return nil
}

// decodeUser is the single place stored profiles are normalized: the document
// key wins when the id field is absent, ownClubs is never nil and duplicate
// club ids are dropped. A stored id that disagrees with the key is rejected.
func decodeUser(uid string, u User) (User, error) {
	switch {
	case u.ID == "":
		u.ID = uid
	case u.ID != uid:
		return User{}, apperr.Newf(apperr.ErrDecode, "users/%s: stored id %q does not match document", uid, u.ID)
	}
	u.OwnClubs = dedupeClubs(u.OwnClubs)
	return u, nil
}
