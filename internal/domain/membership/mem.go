package membership

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tennis-space/backend/internal/domain/apperr"
)

type MemRepo struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]ClubMembership
}

func NewMemRepo() *MemRepo {
	return &MemRepo{rows: map[string]ClubMembership{}}
}

func (r *MemRepo) Create(_ context.Context, m ClubMembership) (*ClubMembership, error) {
	m = m.Clone()
	m.ID = uuid.NewString()
	r.mu.Lock()
	r.rows[m.ID] = m
	r.order = append(r.order, m.ID)
	r.mu.Unlock()
	out := m.Clone()
	return &out, nil
}

func (r *MemRepo) Get(_ context.Context, id string) (*ClubMembership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, apperr.Newf(apperr.ErrNotFound, "membership %s not found", id)
	}
	out := m.Clone()
	return &out, nil
}

func (r *MemRepo) ListByUser(_ context.Context, userID string) ([]ClubMembership, error) {
	return r.filter(func(m ClubMembership) bool { return m.UserID == userID }), nil
}

func (r *MemRepo) ListByClub(_ context.Context, clubID string) ([]ClubMembership, error) {
	return r.filter(func(m ClubMembership) bool { return m.ClubID == clubID }), nil
}

func (r *MemRepo) Update(_ context.Context, m ClubMembership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[m.ID]
	if !ok {
		return apperr.Newf(apperr.ErrNotFound, "membership %s not found", m.ID)
	}
	next := m.Clone()
	cur.Status = next.Status
	cur.ApprovedDate = next.ApprovedDate
	cur.ApprovedBy = next.ApprovedBy
	r.rows[m.ID] = cur
	return nil
}

func (r *MemRepo) filter(keep func(ClubMembership) bool) []ClubMembership {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []ClubMembership{}
	for _, id := range r.order {
		if m := r.rows[id]; keep(m) {
			out = append(out, m.Clone())
		}
	}
	return out
}
