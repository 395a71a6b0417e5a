// Package middleware provides the HTTP middleware chain: request IDs,
// request identity, access logging and metrics.
package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/invoza/webapp/internal/logger"
	"go.uber.org/zap"
)

// RequestID tags each request with a unique ID and enriches the
// request-scoped logger with it. An inbound X-Request-ID is honored so IDs
// survive proxy hops.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctxLogger := logger.L().With(zap.String("request_id", requestID))
		ctx := logger.WithContext(r.Context(), ctxLogger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
