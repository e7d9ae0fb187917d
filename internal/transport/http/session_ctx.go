package http

import (
	"context"
	"net/http"

	"ratedash/internal/session"
)

// SessionHeader identifies the caller's dashboard session. Requests without
// it (or with an unknown id) get a fresh session whose id is echoed back in
// the same header.
const SessionHeader = "X-Session-ID"

// sessionKey is the context key for the resolved session.
type sessionKey struct{}

// SessionCtx resolves the caller's session from the X-Session-ID header and
// stores it in the request context.
func SessionCtx(store *session.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := store.GetOrCreate(r.Header.Get(SessionHeader))
			w.Header().Set(SessionHeader, sess.ID)

			ctx := context.WithValue(r.Context(), sessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session placed by SessionCtx, or nil.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey{}).(*session.Session)
	return sess
}
