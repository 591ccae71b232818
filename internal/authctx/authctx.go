package authctx

import (
	"context"

	"tennis-space/backend/internal/session"
)

type ctxKey string

const (
	uidKey     ctxKey = "uid"
	sessionKey ctxKey = "session"
)

func WithUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, uidKey, uid)
}

func UID(ctx context.Context) (string, bool) {
	v := ctx.Value(uidKey)
	uid, ok := v.(string)
	return uid, ok && uid != ""
}

// WithSession attaches the request's session store.
func WithSession(ctx context.Context, st *session.Store) context.Context {
	return context.WithValue(ctx, sessionKey, st)
}

// Session returns the request's session store. Requests that passed no auth
// middleware get an empty store, never nil.
func Session(ctx context.Context) *session.Store {
	if st, ok := ctx.Value(sessionKey).(*session.Store); ok && st != nil {
		return st
	}
	return session.NewStore()
}
