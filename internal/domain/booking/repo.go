package booking

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tennis-space/backend/internal/domain/apperr"
)

const collection = "bookings"

// Repository persists bookings under bookings/{id}.
type Repository interface {
	Create(ctx context.Context, b CourtBooking) (*CourtBooking, error)
	Get(ctx context.Context, id string) (*CourtBooking, error)
	ListByClub(ctx context.Context, clubID string) ([]CourtBooking, error)
	// ListByUser filters on bookedBy.
	ListByUser(ctx context.Context, userID string) ([]CourtBooking, error)
	// Cancel marks the booking CANCELLED. It does not look at the current
	// status, so cancelling twice overwrites the first cancellation stamp.
	Cancel(ctx context.Context, id, by, reason string, atMillis int64) error
}

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Create(ctx context.Context, b CourtBooking) (*CourtBooking, error) {
	ref := r.fs.Collection(collection).NewDoc()
	if _, err := ref.Create(ctx, b); err != nil {
		return nil, apperr.Persistence(err)
	}
	out := b.Clone()
	out.ID = ref.ID
	return &out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*CourtBooking, error) {
	doc, err := r.fs.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperr.Newf(apperr.ErrNotFound, "booking %s not found", id)
		}
		return nil, apperr.Persistence(err)
	}
	b, err := fromSnapshot(doc)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repo) ListByClub(ctx context.Context, clubID string) ([]CourtBooking, error) {
	return r.list(ctx, r.fs.Collection(collection).Where("clubId", "==", clubID))
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]CourtBooking, error) {
	return r.list(ctx, r.fs.Collection(collection).Where("bookedBy", "==", userID))
}

func (r *Repo) Cancel(ctx context.Context, id, by, reason string, atMillis int64) error {
	updates := []firestore.Update{
		{Path: "status", Value: StatusCancelled},
		{Path: "cancelledAt", Value: atMillis},
		{Path: "cancelledBy", Value: by},
	}
	if reason != "" {
		updates = append(updates, firestore.Update{Path: "cancellationReason", Value: reason})
	}
	if _, err := r.fs.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return apperr.Newf(apperr.ErrNotFound, "booking %s not found", id)
		}
		return apperr.Persistence(err)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, q firestore.Query) ([]CourtBooking, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	out := []CourtBooking{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperr.Persistence(err)
		}
		b, err := fromSnapshot(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func fromSnapshot(doc *firestore.DocumentSnapshot) (CourtBooking, error) {
	var b CourtBooking
	if err := doc.DataTo(&b); err != nil {
		return CourtBooking{}, apperr.Wrap(apperr.ErrDecode, fmt.Errorf("bookings/%s: %w", doc.Ref.ID, err))
	}
	return decodeBooking(doc.Ref.ID, b)
}

// decodeBooking fills the stored defaults (CONFIRMED, REGULAR, no players)
// and rejects unknown enum values and missing references.
func decodeBooking(id string, b CourtBooking) (CourtBooking, error) {
	b.ID = id
	if b.Status == "" {
		b.Status = StatusConfirmed
	}
	if b.BookingType == "" {
		b.BookingType = TypeRegular
	}
	if b.Players == nil {
		b.Players = []string{}
	}
	switch {
	case b.CourtID == "" || b.ClubID == "" || b.BookedBy == "":
		return CourtBooking{}, apperr.Newf(apperr.ErrDecode, "bookings/%s: courtId, clubId and bookedBy are required", id)
	case !b.Status.Valid():
		return CourtBooking{}, apperr.Newf(apperr.ErrDecode, "bookings/%s: unknown status %q", id, b.Status)
	case !b.BookingType.Valid():
		return CourtBooking{}, apperr.Newf(apperr.ErrDecode, "bookings/%s: unknown bookingType %q", id, b.BookingType)
	}
	return b, nil
}
