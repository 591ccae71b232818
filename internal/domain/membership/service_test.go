package membership

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tennis-space/backend/internal/domain/apperr"
	"tennis-space/backend/internal/domain/club"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *club.TennisClub) {
	t.Helper()
	clubs := club.NewService(club.NewMemRepo())
	c := club.New("TC Test", "Teststraße 1", "Test")
	c.AdminIDs = []string{"admin-1"}
	created, err := clubs.CreateClub(context.Background(), c)
	require.NoError(t, err)

	svc := NewService(NewMemRepo(), clubs)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, created
}

func TestRequestMembership(t *testing.T) {
	svc, c := newTestService(t)

	m, err := svc.RequestMembership(context.Background(), c.ID, "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, StatusPending, m.Status)
	assert.Equal(t, TypeFull, m.MembershipType)
	assert.Equal(t, fixedNow.UnixMilli(), m.JoinRequestDate)
	assert.Nil(t, m.ApprovedDate)
	assert.Nil(t, m.ApprovedBy)
}

func TestRequestMembership_RequiresIDs(t *testing.T) {
	svc, c := newTestService(t)

	_, err := svc.RequestMembership(context.Background(), c.ID, "")
	assert.True(t, apperr.IsErrValidation(err))
}

func TestRequestMembership_DuplicatesAreNotMerged(t *testing.T) {
	ctx := context.Background()
	svc, c := newTestService(t)

	first, err := svc.RequestMembership(ctx, c.ID, "u1")
	require.NoError(t, err)
	second, err := svc.RequestMembership(ctx, c.ID, "u1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := svc.GetUserMemberships(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListMemberships(t *testing.T) {
	ctx := context.Background()
	svc, c := newTestService(t)

	_, err := svc.RequestMembership(ctx, c.ID, "u1")
	require.NoError(t, err)
	_, err = svc.RequestMembership(ctx, c.ID, "u2")
	require.NoError(t, err)
	_, err = svc.RequestMembership(ctx, "other-club", "u1")
	require.NoError(t, err)

	byClub, err := svc.GetClubMemberships(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, byClub, 2)

	byUser, err := svc.GetUserMemberships(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	none, err := svc.GetUserMemberships(ctx, "nonexistent")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	svc, c := newTestService(t)

	m, err := svc.RequestMembership(ctx, c.ID, "u1")
	require.NoError(t, err)

	_, err = svc.Decide(ctx, "u1", m.ID, StatusApproved)
	assert.True(t, apperr.IsErrForbidden(err))

	approved, err := svc.Decide(ctx, "admin-1", m.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedDate)
	assert.Equal(t, fixedNow.UnixMilli(), *approved.ApprovedDate)
	assert.Equal(t, "admin-1", *approved.ApprovedBy)

	list, err := svc.GetClubMemberships(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, StatusApproved, list[0].Status)

	suspended, err := svc.Decide(ctx, "admin-1", m.ID, StatusSuspended)
	require.NoError(t, err)
	assert.Nil(t, suspended.ApprovedBy)
}

func TestDecide_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Decide(ctx, "admin-1", "missing", StatusApproved)
	assert.True(t, apperr.IsErrNotFound(err))

	_, err = svc.Decide(ctx, "admin-1", "missing", Status("MAYBE"))
	assert.True(t, apperr.IsErrValidation(err))
}

func TestDecodeMembership(t *testing.T) {
	m, err := decodeMembership("m1", ClubMembership{UserID: "u1", ClubID: "c1", Status: StatusPending})
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, TypeFull, m.MembershipType)

	_, err = decodeMembership("m1", ClubMembership{UserID: "u1", ClubID: "c1", Status: "ACTIVE"})
	assert.True(t, apperr.IsErrDecode(err))

	_, err = decodeMembership("m1", ClubMembership{ClubID: "c1", Status: StatusPending})
	assert.True(t, apperr.IsErrDecode(err))
}
