// Package admin gates duplicate-review and merge endpoints behind a shared
// API key. The key is supplied in X-Admin-Key and compared against a bcrypt
// hash so the plaintext never lives in configuration.
package admin

import (
	"log/slog"
	"net/http"

	"pessoas/pkg/requestcontext"
	"pessoas/pkg/secrets"
)

// RequireAPIKey rejects requests whose X-Admin-Key header does not verify
// against the configured bcrypt hash. An empty hash disables the endpoints
// entirely rather than leaving them open.
func RequireAPIKey(keyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			if keyHash == "" {
				logger.WarnContext(ctx, "admin endpoint called but no admin key configured",
					"request_id", requestID,
					"path", r.URL.Path,
				)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			key := r.Header.Get("X-Admin-Key")
			if key == "" {
				writeUnauthorized(w)
				return
			}
			if err := secrets.Verify(keyHash, key); err != nil {
				logger.WarnContext(ctx, "admin key rejected",
					"request_id", requestID,
					"path", r.URL.Path,
				)
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"invalid admin key"}`))
}
