package middlewarex

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"deal_radar/pkg/errcodes"
	"deal_radar/pkg/httpx/reply"
)

// BearerAuth проверяет статический токен из Authorization: Bearer. Пустой token отключает проверку.
func BearerAuth(token string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(token)) != 1 {
				reply.Problem(r.Context(), w, http.StatusUnauthorized, errcodes.Unauthorized, "invalid or missing token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
