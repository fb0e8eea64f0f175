// Package middleware provides the HTTP middleware chain: principal
// resolution, request IDs, request logging, and rate limiting.
package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"microblog/internal/domain"
	"microblog/internal/service/security"
)

// Authenticate returns a middleware that resolves the request's credential
// into a principal and stores it in the context. Requests without an
// Authorization header pass through anonymously; the per-operation policy
// decides whether anonymous access is enough. A present-but-bad credential is
// rejected with 401 rather than silently downgraded to anonymous.
func Authenticate(resolver *security.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w, "malformed Authorization header, expected Bearer token")
				return
			}

			principal, err := resolver.ResolveBearer(r.Context(), token)
			if err != nil {
				msg := "unauthorized"
				var unauth *domain.UnauthenticatedError
				if errors.As(err, &unauth) {
					msg = unauth.Error()
				}
				writeUnauthorized(w, msg)
				return
			}

			ctx := domain.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionAuthenticate returns a middleware that resolves the web UI session
// cookie into a principal. A missing or stale cookie passes through
// anonymously; UI handlers redirect to the login page where needed.
func SessionAuthenticate(resolver *security.Resolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := resolver.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				// Stale cookie: clear it and continue anonymously.
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
				})
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusUnauthorized, message)
}

// writeJSONError emits the same {code, message} envelope the API handlers
// use, so middleware rejections look no different to clients.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    status,
		"message": message,
	})
}
