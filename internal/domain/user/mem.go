package user

import (
	"context"
	"sync"

	"tennis-space/backend/internal/domain/apperr"
)

// MemRepo is an in-memory Repository used by tests and the memory backend.
type MemRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemRepo() *MemRepo {
	return &MemRepo{users: map[string]User{}}
}

func (r *MemRepo) Get(_ context.Context, uid string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[uid]
	if !ok {
		return nil, apperr.Newf(apperr.ErrNotFound, "user %s not found", uid)
	}
	out, err := decodeUser(uid, u.Clone())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MemRepo) Save(_ context.Context, u User) error {
	if u.ID == "" {
		return apperr.New(apperr.ErrValidation, "user id is required")
	}
	u = u.Clone()
	u.OwnClubs = dedupeClubs(u.OwnClubs)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *MemRepo) SetOwnClubs(_ context.Context, uid string, clubIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return apperr.Newf(apperr.ErrNotFound, "user %s not found", uid)
	}
	u.OwnClubs = dedupeClubs(clubIDs)
	r.users[uid] = u
	return nil
}
