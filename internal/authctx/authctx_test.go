package authctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"tennis-space/backend/internal/session"
)

func TestUID(t *testing.T) {
	_, ok := UID(context.Background())
	assert.False(t, ok)

	_, ok = UID(WithUID(context.Background(), ""))
	assert.False(t, ok)

	uid, ok := UID(WithUID(context.Background(), "u1"))
	assert.True(t, ok)
	assert.Equal(t, "u1", uid)
}

func TestSession(t *testing.T) {
	empty := Session(context.Background())
	assert.NotNil(t, empty)
	assert.False(t, empty.Active())

	st := session.NewStore()
	st.Set(session.Session{UID: "u1"})
	got := Session(WithSession(context.Background(), st))
	assert.Same(t, st, got)
}
