package club

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tennis-space/backend/internal/domain/apperr"
)

const collection = "clubs"

// Repository persists clubs under clubs/{id}. The store assigns ids.
type Repository interface {
	List(ctx context.Context) ([]TennisClub, error)
	Create(ctx context.Context, c TennisClub) (*TennisClub, error)
	Get(ctx context.Context, id string) (*TennisClub, error)
}

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Create(ctx context.Context, c TennisClub) (*TennisClub, error) {
	ref := r.fs.Collection(collection).NewDoc()
	if _, err := ref.Create(ctx, c); err != nil {
		return nil, apperr.Persistence(err)
	}
	out := c.Clone()
	out.ID = ref.ID
	return &out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*TennisClub, error) {
	if id == "" {
		return nil, apperr.New(apperr.ErrNotFound, "club id is empty")
	}
	doc, err := r.fs.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperr.Newf(apperr.ErrNotFound, "club %s not found", id)
		}
		return nil, apperr.Persistence(err)
	}
	c, err := fromSnapshot(doc)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) List(ctx context.Context) ([]TennisClub, error) {
	it := r.fs.Collection(collection).Documents(ctx)
	defer it.Stop()

	out := []TennisClub{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperr.Persistence(err)
		}
		c, err := fromSnapshot(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func fromSnapshot(doc *firestore.DocumentSnapshot) (TennisClub, error) {
	var c TennisClub
	if err := doc.DataTo(&c); err != nil {
		return TennisClub{}, apperr.Wrap(apperr.ErrDecode, fmt.Errorf("clubs/%s: %w", doc.Ref.ID, err))
	}
	return decodeClub(doc.Ref.ID, doc.Data(), c)
}
