package httpapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// Session transport. Clients send the token from login back as a bearer
// token or through the cookie set by login.
const (
	sessionCookie = "lexdraft_session"
	sessionHeader = "X-Session-Token"
)

// withSession scopes every API request to its own session so that clients
// of one server never share an identity. Requests without a token are
// treated as logged out.
func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := driving.WithSession(r.Context(), sessionToken(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// newSessionToken returns the request's token, or a fresh one when it has
// none.
func newSessionToken(r *http.Request) string {
	if token, _ := driving.SessionFromContext(r.Context()); token != "" {
		return token
	}
	return uuid.NewString()
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	c := &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}
