package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tennis-space/backend/internal/authctx"
	"tennis-space/backend/internal/session"
)

type staticAuth map[string]string

func (s staticAuth) Authenticate(_ context.Context, token string) (session.Session, error) {
	uid, ok := s[token]
	if !ok {
		return session.Session{}, errors.New("TOKEN_EXPIRED")
	}
	return session.Session{UID: uid, Token: token}, nil
}

func TestWithAuth(t *testing.T) {
	var gotUID string
	var gotActive bool
	h := WithAuth(staticAuth{"good": "u1"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID, _ = authctx.UID(r.Context())
		gotActive = authctx.Session(r.Context()).Active()
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer   ", http.StatusUnauthorized},
		{"rejected", "Bearer bad", http.StatusUnauthorized},
		{"ok", "Bearer good", http.StatusNoContent},
		{"lower case scheme", "bearer good", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUID, gotActive = "", false
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, "u1", gotUID)
				assert.True(t, gotActive)
			} else {
				assert.Empty(t, gotUID)
				assert.Contains(t, rec.Body.String(), `"message"`)
			}
		})
	}
}
