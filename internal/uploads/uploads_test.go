package uploads

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tennis-space/backend/internal/domain/apperr"
)

func fakeSign(context.Context, string, []byte) ([]byte, error) {
	return []byte("signature"), nil
}

func TestProfileObjectPath(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	p, err := ProfileObjectPath("u1", at, ".png")
	require.NoError(t, err)
	assert.Equal(t, "users/u1/profile/avatar-1700000000000.png", p)

	for _, uid := range []string{"", "..", "a/b", `a\b`} {
		_, err := ProfileObjectPath(uid, at, ".png")
		assert.True(t, apperr.IsErrValidation(err), uid)
	}
}

func TestProfileImageURL(t *testing.T) {
	s := NewSigner("tennis-space.appspot.com", "signer@tennis-space.iam.gserviceaccount.com", fakeSign)
	before := time.Now()

	out, err := s.ProfileImageURL(context.Background(), "u1", "image/jpeg", 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "PUT", out.Method)
	assert.Equal(t, "image/jpeg", out.ContentType)
	assert.True(t, strings.HasPrefix(out.ObjectPath, "users/u1/profile/avatar-"))
	assert.True(t, strings.HasSuffix(out.ObjectPath, ".jpg"))
	// out-of-range expiries fall back to the default
	assert.InDelta(t, before.Add(defaultExpiry).Unix(), out.ExpiresAt, 2)
	assert.True(t, strings.HasPrefix(out.URL, "https://storage.googleapis.com/tennis-space.appspot.com/users/u1/profile/"))
	assert.Contains(t, out.URL, "X-Goog-Signature=")
}

func TestProfileImageURL_Errors(t *testing.T) {
	ctx := context.Background()

	var unset *Signer
	_, err := unset.ProfileImageURL(ctx, "u1", "image/png", 0)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewSigner("bucket", "", fakeSign).ProfileImageURL(ctx, "u1", "image/png", 0)
	assert.ErrorIs(t, err, ErrNotConfigured)

	s := NewSigner("bucket", "signer@example.com", fakeSign)
	_, err = s.ProfileImageURL(ctx, "u1", "application/pdf", 0)
	assert.True(t, apperr.IsErrValidation(err))

	failing := NewSigner("bucket", "signer@example.com", func(context.Context, string, []byte) ([]byte, error) {
		return nil, errors.New("permission denied")
	})
	_, err = failing.ProfileImageURL(ctx, "u1", "image/png", 0)
	assert.ErrorContains(t, err, "permission denied")
}
