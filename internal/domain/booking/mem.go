package booking

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tennis-space/backend/internal/domain/apperr"
)

type MemRepo struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]CourtBooking
}

func NewMemRepo() *MemRepo {
	return &MemRepo{rows: map[string]CourtBooking{}}
}

func (r *MemRepo) Create(_ context.Context, b CourtBooking) (*CourtBooking, error) {
	b = b.Clone()
	b.ID = uuid.NewString()
	r.mu.Lock()
	r.rows[b.ID] = b
	r.order = append(r.order, b.ID)
	r.mu.Unlock()
	out := b.Clone()
	return &out, nil
}

func (r *MemRepo) Get(_ context.Context, id string) (*CourtBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.rows[id]
	if !ok {
		return nil, apperr.Newf(apperr.ErrNotFound, "booking %s not found", id)
	}
	out := b.Clone()
	return &out, nil
}

func (r *MemRepo) ListByClub(_ context.Context, clubID string) ([]CourtBooking, error) {
	return r.filter(func(b CourtBooking) bool { return b.ClubID == clubID }), nil
}

func (r *MemRepo) ListByUser(_ context.Context, userID string) ([]CourtBooking, error) {
	return r.filter(func(b CourtBooking) bool { return b.BookedBy == userID }), nil
}

func (r *MemRepo) Cancel(_ context.Context, id, by, reason string, atMillis int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return apperr.Newf(apperr.ErrNotFound, "booking %s not found", id)
	}
	b.Status = StatusCancelled
	b.CancelledAt = &atMillis
	b.CancelledBy = &by
	if reason != "" {
		b.CancellationReason = &reason
	}
	r.rows[id] = b
	return nil
}

func (r *MemRepo) filter(keep func(CourtBooking) bool) []CourtBooking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []CourtBooking{}
	for _, id := range r.order {
		if b := r.rows[id]; keep(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}
