package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
)

// SessionValidator reports whether a session token is currently valid.
type SessionValidator interface {
	Valid(token string) bool
}

// SessionCookie is the name of the gate session cookie.
const SessionCookie = "tably_session"

// Gate returns middleware that requires a valid session cookie before
// letting a request through. Requests without one are redirected to the
// login page (or get a 401 JSON body on API paths).
//
// The gate is a convenience shutter for casual visitors, not a security
// boundary: the secret is shared configuration, sessions live in process
// memory, and nothing behind the gate is otherwise protected.
func Gate(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err == nil && sessions.Valid(cookie.Value) {
				next.ServeHTTP(w, r)
				return
			}

			slog.Debug("gate: no valid session",
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"session required","code":"GATE_SESSION_REQUIRED"}`))
				return
			}

			http.Redirect(w, r, "/login", http.StatusSeeOther)
		})
	}
}

// SecretMatches compares a submitted secret against the configured one in
// constant time.
func SecretMatches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
