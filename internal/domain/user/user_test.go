package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tennis-space/backend/internal/domain/apperr"
)

func TestWithClub(t *testing.T) {
	u := User{ID: "u1", OwnClubs: []string{"c1"}}

	joined := u.WithClub("c2")
	assert.Equal(t, []string{"c1", "c2"}, joined.OwnClubs)
	assert.Equal(t, []string{"c1"}, u.OwnClubs)

	again := joined.WithClub("c2")
	assert.Equal(t, []string{"c1", "c2"}, again.OwnClubs)
}

func TestDecodeUser(t *testing.T) {
	u, err := decodeUser("u1", User{Email: "a@b.com", OwnClubs: []string{"c1", "c1", "c2"}})
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, []string{"c1", "c2"}, u.OwnClubs)

	u, err = decodeUser("u1", User{ID: "u1"})
	require.NoError(t, err)
	assert.NotNil(t, u.OwnClubs)
	assert.Empty(t, u.OwnClubs)

	_, err = decodeUser("u1", User{ID: "someone-else"})
	assert.True(t, apperr.IsErrDecode(err))
}

func TestMemRepo(t *testing.T) {
	ctx := context.Background()
	r := NewMemRepo()

	_, err := r.Get(ctx, "missing")
	assert.True(t, apperr.IsErrNotFound(err))

	phone := "+49 241 123"
	require.NoError(t, r.Save(ctx, User{ID: "u1", Email: "a@b.com", Name: "Ann", PhoneNumber: &phone}))

	got, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	*got.PhoneNumber = "changed"

	again, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "+49 241 123", *again.PhoneNumber)

	require.NoError(t, r.SetOwnClubs(ctx, "u1", []string{"c1", "c1"}))
	again, err = r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, again.OwnClubs)

	assert.True(t, apperr.IsErrNotFound(r.SetOwnClubs(ctx, "nobody", nil)))
	assert.True(t, apperr.IsErrValidation(r.Save(ctx, User{})))
}
