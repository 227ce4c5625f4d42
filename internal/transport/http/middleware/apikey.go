package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/mc-parking-api/internal/domain"
	jwtinfra "github.com/mc-parking-api/internal/infrastructure/jwt"
)

// APIKeyOr admits service-to-service callers presenting the shared x-api-key
// as admin and sends everyone else through fallback. An empty key disables
// the shortcut.
func APIKeyOr(key string, fallback func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		guarded := fallback(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("x-api-key")
			if key != "" && got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1 {
				claims := &jwtinfra.Claims{UserID: "api-gateway", Role: domain.RoleAdmin}
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
				return
			}
			guarded.ServeHTTP(w, r)
		})
	}
}
