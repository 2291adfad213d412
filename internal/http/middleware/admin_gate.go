package middleware

import (
	"crypto/subtle"
	"net/http"
)

// AdminGate guards the admin appointment view behind a shared static
// password sent in X-Admin-Password. This is a convenience gate for the shop
// owner, not an authentication system: no sessions, no users, no expiry.
// An empty password disables the admin surface entirely.
func AdminGate(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if password == "" {
				http.Error(w, "admin access disabled", http.StatusUnauthorized)
				return
			}
			supplied := r.Header.Get("X-Admin-Password")
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
				http.Error(w, "invalid admin password", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
