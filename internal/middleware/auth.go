package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireUser guards member-only pages. A request without a signed-in
// session is redirected to the sign-in page, never answered with an error
// page.
func RequireUser(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, ok := GetSession(r.Context())
			if !ok {
				logger.Error("Session state missing from context", zap.String("path", r.URL.Path))
				http.Redirect(w, r, "/signin", http.StatusSeeOther)
				return
			}

			if _, signedIn := state.User(); !signedIn {
				logger.Debug("Unauthenticated request to protected page",
					zap.String("path", r.URL.Path),
				)
				http.Redirect(w, r, "/signin", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
