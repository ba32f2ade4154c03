package middleware

import (
	"net/http"
	"strings"

	"github.com/monohq/mono/internal/service"
)

// APIKeyGate rejects requests that do not present a known service-level
// bearer key. Runs before identity derivation; it is an allow-list for
// trusted front-ends, not user authentication.
func APIKeyGate(apiKeys *service.APIKeyService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := bearerToken(r)
			if key == "" {
				respondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			err := apiKeys.Verify(key)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
