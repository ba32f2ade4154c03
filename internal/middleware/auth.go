package middleware

import (
	"net/http"

	"github.com/monohq/mono/internal/ctxkeys"
	"github.com/monohq/mono/internal/service"
)

// Auth derives the caller identity from the access-token cookie and adds the
// user to the request context when valid. Any failure (missing cookie,
// expired or malformed token, unknown subject) leaves the request anonymous;
// routes that need identity wrap their handler in RequireAuth. No side
// effects: tokens are never refreshed here.
func Auth(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.CookieAccessToken)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := authService.VerifyToken(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userService.ByID(subject)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth short-circuits with 401 when no identity was derived.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	}
}
