package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tennis-space/backend/internal/authctx"
	"tennis-space/backend/internal/httpjson"
	"tennis-space/backend/internal/logger"
	"tennis-space/backend/internal/session"
)

// Authenticator resolves a bearer token into a session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (session.Session, error)
}

// WithAuth verifies the bearer token and gives the request its own session
// store holding the verified session.
func WithAuth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "missing Authorization: Bearer <token>")
				return
			}

			sess, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context()).Debug("token rejected", zap.Error(err))
				httpjson.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			st := session.NewStore()
			st.Set(sess)

			ctx := authctx.WithSession(r.Context(), st)
			ctx = authctx.WithUID(ctx, sess.UID)
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.String("uid", sess.UID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(h[len("Bearer "):])
	return token, token != ""
}
