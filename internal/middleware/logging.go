package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"microblog/internal/domain"
)

// RequestLogger returns a middleware that logs one structured line per
// request: method, path, status, duration, request id, and the acting
// principal when one resolved. Credentials never appear in the log.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", RequestIDFromContext(r.Context()),
			}
			if p, ok := domain.PrincipalFromContext(r.Context()); ok {
				attrs = append(attrs, "principal", p.Username)
			}
			logger.Info("request", attrs...)
		})
	}
}
