package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tennis-space/backend/internal/config"
	"tennis-space/backend/internal/domain/booking"
	"tennis-space/backend/internal/domain/club"
	"tennis-space/backend/internal/domain/membership"
	"tennis-space/backend/internal/domain/user"
	"tennis-space/backend/internal/identity"
)

type testServer struct {
	h     http.Handler
	clock *time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	now := time.Now().Truncate(time.Second)
	ts := &testServer{clock: &now}

	provider := identity.NewMemoryProvider("test-secret", time.Hour)
	provider.SetClock(func() time.Time { return *ts.clock })

	clubs := club.NewService(club.NewMemRepo())
	ts.h = NewRouter(RouterDeps{
		Cfg:         config.Config{AllowedOrigins: []string{"http://localhost:3000"}},
		Identity:    identity.NewService(provider, user.NewMemRepo(), clubs),
		Clubs:       clubs,
		Memberships: membership.NewService(membership.NewMemRepo(), clubs),
		Bookings:    booking.NewService(booking.NewMemRepo(), clubs),
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) register(t *testing.T, email, name string) authResponse {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": email, "password": "secret123", "name": name,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decodeBody[map[string]string](t, rec)["message"]
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	reg := ts.register(t, "anna@example.com", "Anna")
	assert.Equal(t, "Anna", reg.User.Name)

	rec := ts.do(t, http.MethodGet, "/v1/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[user.User](t, rec)
	assert.Equal(t, reg.User.ID, me.ID)
	assert.Equal(t, []string{}, me.OwnClubs)

	rec = ts.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "anna@example.com", "password": "wrong-pw"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_PASSWORD", message(t, rec))

	rec = ts.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "anna@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeBody[authResponse](t, rec)
	assert.Equal(t, reg.User.ID, login.User.ID)

	rec = ts.do(t, http.MethodPost, "/v1/auth/logout", login.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/me", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_Errors(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "anna@example.com", "Anna")

	tests := []struct {
		name   string
		body   map[string]string
		status int
		msg    string
	}{
		{"bad email", map[string]string{"email": "anna-example", "password": "secret123", "name": "Anna"}, 400, "invalid email address"},
		{"short password", map[string]string{"email": "b@example.com", "password": "123", "name": "Ben"}, 400, "password must be at least 6 characters"},
		{"short name", map[string]string{"email": "b@example.com", "password": "secret123", "name": " B "}, 400, "name must be at least 2 characters"},
		{"taken", map[string]string{"email": "anna@example.com", "password": "secret123", "name": "Anna"}, 409, "EMAIL_EXISTS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/v1/auth/register", "", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.msg, message(t, rec))
		})
	}

	rec := ts.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{"email": "x@y.z", "unknown": "field"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/v1/clubs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/clubs", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token", message(t, rec))
}

func TestClubsMembershipsAndBookings(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.register(t, "admin@example.com", "Admin")
	player := ts.register(t, "player@example.com", "Player")

	rec := ts.do(t, http.MethodPost, "/v1/clubs", admin.Token, map[string]any{
		"name":    "TC Würselen",
		"address": "Kaiserstraße 1, 52146 Würselen",
		"courts": []map[string]any{
			{"id": "court1", "name": "Platz 1", "surface": "CLAY", "isActive": true},
			{"id": "court2", "name": "Platz 2", "surface": "CLAY", "isActive": false},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decodeBody[club.TennisClub](t, rec)
	assert.Equal(t, []string{admin.User.ID}, c.AdminIDs)
	assert.Equal(t, club.DefaultBookingSettings(), c.BookingSettings)

	rec = ts.do(t, http.MethodGet, "/v1/clubs?q=wurselen", player.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]club.TennisClub](t, rec), 1)

	rec = ts.do(t, http.MethodGet, "/v1/clubs/"+c.ID+"/courts", player.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	courts := decodeBody[[]club.Court](t, rec)
	require.Len(t, courts, 1)
	assert.Equal(t, "court1", courts[0].ID)

	rec = ts.do(t, http.MethodGet, "/v1/clubs/missing-id", player.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, message(t, rec))

	// joining twice leaves one entry
	for range 2 {
		rec = ts.do(t, http.MethodPost, "/v1/me/clubs/"+c.ID, player.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, []string{c.ID}, decodeBody[user.User](t, rec).OwnClubs)

	// memberships
	rec = ts.do(t, http.MethodPost, "/v1/clubs/"+c.ID+"/memberships", player.Token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	m := decodeBody[membership.ClubMembership](t, rec)
	assert.Equal(t, membership.StatusPending, m.Status)

	rec = ts.do(t, http.MethodPost, "/v1/memberships/"+m.ID+"/decision", player.Token, map[string]string{"status": "APPROVED"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/memberships/"+m.ID+"/decision", admin.Token, map[string]string{"status": "MAYBE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/memberships/"+m.ID+"/decision", admin.Token, map[string]string{"status": "APPROVED"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, membership.StatusApproved, decodeBody[membership.ClubMembership](t, rec).Status)

	rec = ts.do(t, http.MethodGet, "/v1/users/me/memberships", player.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]membership.ClubMembership](t, rec), 1)

	rec = ts.do(t, http.MethodGet, "/v1/users/"+admin.User.ID+"/memberships", player.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// bookings
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	rec = ts.do(t, http.MethodPost, "/v1/bookings", player.Token, map[string]any{
		"courtId":   "court1",
		"clubId":    c.ID,
		"startTime": start.UnixMilli(),
		"endTime":   start.Add(time.Hour).UnixMilli(),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	b := decodeBody[booking.CourtBooking](t, rec)
	assert.Equal(t, player.User.ID, b.BookedBy)
	assert.Equal(t, booking.StatusConfirmed, b.Status)

	rec = ts.do(t, http.MethodPost, "/v1/bookings", player.Token, map[string]any{
		"courtId":   "court1",
		"clubId":    c.ID,
		"startTime": start.UnixMilli(),
		"endTime":   start.UnixMilli(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "startTime must be before endTime", message(t, rec))

	rec = ts.do(t, http.MethodPost, "/v1/bookings/"+b.ID+"/cancel", player.Token, map[string]string{"reason": "rain"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/clubs/"+c.ID+"/bookings", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]booking.CourtBooking](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, booking.StatusCancelled, list[0].Status)
	assert.Equal(t, "rain", *list[0].CancellationReason)

	rec = ts.do(t, http.MethodPost, "/v1/bookings/missing/cancel", player.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/users/me/bookings", player.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]booking.CourtBooking](t, rec), 1)
}

func TestUpdateMe(t *testing.T) {
	ts := newTestServer(t)
	reg := ts.register(t, "anna@example.com", "Anna")

	rec := ts.do(t, http.MethodPut, "/v1/me", reg.Token, map[string]string{"name": "Anna B.", "phoneNumber": "+49 241 1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	u := decodeBody[user.User](t, rec)
	assert.Equal(t, "Anna B.", u.Name)
	require.NotNil(t, u.PhoneNumber)

	rec = ts.do(t, http.MethodGet, "/v1/me", reg.Token, nil)
	assert.Equal(t, "Anna B.", decodeBody[user.User](t, rec).Name)

	rec = ts.do(t, http.MethodPut, "/v1/me", reg.Token, map[string]string{"profileImageUrl": "https://example.com/a.png"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	u = decodeBody[user.User](t, rec)
	require.NotNil(t, u.ProfileImageURL)
	assert.Equal(t, "https://example.com/a.png", *u.ProfileImageURL)

	rec = ts.do(t, http.MethodPut, "/v1/me", reg.Token, map[string]string{"profileImageUrl": "", "phoneNumber": " "})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	u = decodeBody[user.User](t, rec)
	assert.Nil(t, u.ProfileImageURL)
	assert.Nil(t, u.PhoneNumber)

	rec = ts.do(t, http.MethodGet, "/v1/me", reg.Token, nil)
	assert.Nil(t, decodeBody[user.User](t, rec).ProfileImageURL)
}

func TestProfileImage_NotConfigured(t *testing.T) {
	ts := newTestServer(t)
	reg := ts.register(t, "anna@example.com", "Anna")

	rec := ts.do(t, http.MethodPost, "/v1/me/profile-image", reg.Token, map[string]string{"contentType": "image/png"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/me/profile-image", reg.Token, map[string]string{"contentType": "text/plain"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
