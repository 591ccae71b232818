package membership

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tennis-space/backend/internal/domain/apperr"
)

const collection = "memberships"

// Repository persists memberships under memberships/{id}. Lists are equality
// filters; an empty result is not an error.
type Repository interface {
	Create(ctx context.Context, m ClubMembership) (*ClubMembership, error)
	Get(ctx context.Context, id string) (*ClubMembership, error)
	ListByUser(ctx context.Context, userID string) ([]ClubMembership, error)
	ListByClub(ctx context.Context, clubID string) ([]ClubMembership, error)
	Update(ctx context.Context, m ClubMembership) error
}

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Create(ctx context.Context, m ClubMembership) (*ClubMembership, error) {
	ref := r.fs.Collection(collection).NewDoc()
	if _, err := ref.Create(ctx, m); err != nil {
		return nil, apperr.Persistence(err)
	}
	out := m.Clone()
	out.ID = ref.ID
	return &out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*ClubMembership, error) {
	doc, err := r.fs.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperr.Newf(apperr.ErrNotFound, "membership %s not found", id)
		}
		return nil, apperr.Persistence(err)
	}
	m, err := fromSnapshot(doc)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]ClubMembership, error) {
	return r.list(ctx, r.fs.Collection(collection).Where("userId", "==", userID))
}

func (r *Repo) ListByClub(ctx context.Context, clubID string) ([]ClubMembership, error) {
	return r.list(ctx, r.fs.Collection(collection).Where("clubId", "==", clubID))
}

// Update overwrites the stored membership; it must already exist.
func (r *Repo) Update(ctx context.Context, m ClubMembership) error {
	ref := r.fs.Collection(collection).Doc(m.ID)
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "status", Value: m.Status},
		{Path: "approvedDate", Value: m.ApprovedDate},
		{Path: "approvedBy", Value: m.ApprovedBy},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return apperr.Newf(apperr.ErrNotFound, "membership %s not found", m.ID)
		}
		return apperr.Persistence(err)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, q firestore.Query) ([]ClubMembership, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	out := []ClubMembership{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperr.Persistence(err)
		}
		m, err := fromSnapshot(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func fromSnapshot(doc *firestore.DocumentSnapshot) (ClubMembership, error) {
	var m ClubMembership
	if err := doc.DataTo(&m); err != nil {
		return ClubMembership{}, apperr.Wrap(apperr.ErrDecode, fmt.Errorf("memberships/%s: %w", doc.Ref.ID, err))
	}
	return decodeMembership(doc.Ref.ID, m)
}

// decodeMembership finishes decoding a stored membership: a missing type is
// FULL, while a missing or unknown status and missing references fail.
func decodeMembership(id string, m ClubMembership) (ClubMembership, error) {
	m.ID = id
	if m.MembershipType == "" {
		m.MembershipType = TypeFull
	}
	switch {
	case m.UserID == "" || m.ClubID == "":
		return ClubMembership{}, apperr.Newf(apperr.ErrDecode, "memberships/%s: userId and clubId are required", id)
	case !m.Status.Valid():
		return ClubMembership{}, apperr.Newf(apperr.ErrDecode, "memberships/%s: unknown status %q", id, m.Status)
	case !m.MembershipType.Valid():
		return ClubMembership{}, apperr.Newf(apperr.ErrDecode, "memberships/%s: unknown membershipType %q", id, m.MembershipType)
	}
	return m, nil
}
