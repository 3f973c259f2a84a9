package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/todoloop/remind-api/internal/api/shared"
)

// CronAuthMiddleware guards the scheduled sweep entry point with a shared
// bearer secret. The scheduler must present "Authorization: Bearer <secret>";
// anything else is rejected with 401. In the designated non-production mode
// the check is bypassed entirely so local invocations need no credential.
type CronAuthMiddleware struct {
	secret string
	bypass bool
}

// NewCronAuthMiddleware creates a CronAuthMiddleware with the given shared
// secret. When bypass is true every request passes.
func NewCronAuthMiddleware(secret string, bypass bool) *CronAuthMiddleware {
	return &CronAuthMiddleware{
		secret: secret,
		bypass: bypass,
	}
}

// Authenticate validates the bearer credential on the request.
func (m *CronAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.bypass {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		expected := "Bearer " + m.secret
		if subtle.ConstantTimeCompare([]byte(authHeader), []byte(expected)) != 1 {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}
