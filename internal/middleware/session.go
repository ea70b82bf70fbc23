package middleware

import (
	"context"
	"net/http"

	"attire-rental/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionMiddleware loads the visitor's session state and threads it
// through the request context, so handlers never touch the cookie store
// directly.
func SessionMiddleware(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := manager.Load(r)
			ctx := context.WithValue(r.Context(), sessionKey, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession extracts the session state from the request context.
func GetSession(ctx context.Context) (*session.State, bool) {
	state, ok := ctx.Value(sessionKey).(*session.State)
	return state, ok
}
