package club

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tennis-space/backend/internal/domain/apperr"
)

// MemRepo is an in-memory Repository. List returns clubs in creation order.
type MemRepo struct {
	mu    sync.RWMutex
	order []string
	clubs map[string]TennisClub
}

func NewMemRepo() *MemRepo {
	return &MemRepo{clubs: map[string]TennisClub{}}
}

func (r *MemRepo) Create(_ context.Context, c TennisClub) (*TennisClub, error) {
	c = c.Clone()
	c.ID = uuid.NewString()
	r.mu.Lock()
	r.clubs[c.ID] = c
	r.order = append(r.order, c.ID)
	r.mu.Unlock()
	out := c.Clone()
	return &out, nil
}

func (r *MemRepo) Get(_ context.Context, id string) (*TennisClub, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clubs[id]
	if !ok {
		return nil, apperr.Newf(apperr.ErrNotFound, "club %s not found", id)
	}
	out := c.Clone()
	return &out, nil
}

func (r *MemRepo) List(_ context.Context) ([]TennisClub, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]TennisClub, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.clubs[id].Clone())
	}
	return out, nil
}
